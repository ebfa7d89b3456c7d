// Package catalogue reads and writes action catalogues stored as single files.
//
// Two entry shapes are accepted, in JSON or YAML:
//
//	{"Eat": [1, {"Food": 1}, {"Fed": 1}]}
//	{"Eat": {"cost": 1, "preconditions": {"Food": 1}, "effects": {"Fed": 1}}}
//
// States may carry the "_isState" and "_stateName" markers written by EncodeJSON.
package catalogue
