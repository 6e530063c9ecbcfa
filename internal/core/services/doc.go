// Package services implements the driving ports.
//
// Services compose driven ports: the serializer reads and writes NeuroML,
// the normaliser fixes up exported morphologies, the annotator factory
// turns recipe steps into a pipeline and the recipe store names the work.
// They hold no state between calls beyond their configuration.
package services
