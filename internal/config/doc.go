// Package config provides configuration parsing for nsdom.
//
// The configuration is stored in nsdom.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 7357,
//	    "allowedOrigins": ["http://localhost:3000"]
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "nsdom",
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "nsdom"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "scenarios": {
//	    "dir": "testdata/scenarios",
//	    "s3": {
//	      "bucket": "render-scenarios",
//	      "prefix": "svg/",
//	      "region": "us-east-1"
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.ServerAddress())
package config
