// Package kinetics evaluates Hodgkin-Huxley rate functions.
//
// Voltages are in mV and rates in per_ms. Quantities read from a model are
// scaled into those units; no other unit handling is attempted.
package kinetics
