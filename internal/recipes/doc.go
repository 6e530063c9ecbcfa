// Package recipes holds the parameter tables that drive cell and channel
// production.
//
// Three recipes are built in: GGN (loaded from an exported morphology),
// KC (a single-compartment cell built from scratch) and na_channel (a
// Hodgkin-Huxley sodium channel). A TOML file can override them or add
// new ones:
//
//	[cell.GGN]
//	source = "load"
//	template_id = "GGN_20170309_sc_0_0"
//
//	[[cell.GGN.steps]]
//	kind = "resistivity"
//	value = "0.1 kohm_cm"
//	group = "all"
package recipes
