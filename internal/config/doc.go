// Package config defines the format-agnostic description of a causal model,
// along with the Loader interface implemented by the file-format adapters.
//
// The `config.Model` is the single input of the `dag` package. Concrete
// loaders, such as for HCL or YAML, are provided in separate packages.
package config
