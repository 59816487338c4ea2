// Package security provides the TLS settings of the default HTTP transport.
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/path/to/ca.pem",
//	    CertFile: "/path/to/client.pem",
//	    KeyFile:  "/path/to/client-key.pem",
//	}
//	tlsConfig, err := cfg.Build()
package security
