// Package stages holds the static funnel stage catalog: the closed set of
// stage identifiers plus the description and KPI copy shown for each one.
// The built-in catalog ships as an embedded YAML document and is decoded once;
// catalogs never change after construction.
package stages
