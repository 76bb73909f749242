// Package config loads strategy selection and parameters from YAML,
// validating strategy names the way inference-sim's PolicyBundle
// validates policy names.
package config
