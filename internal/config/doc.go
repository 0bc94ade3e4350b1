// Package config provides configuration parsing for the reactor CLI.
//
// The configuration is stored in reactor.yaml (or reactor.yml, or
// reactor.json) in the working directory. Command line flags override the
// values read from the file.
//
// # Configuration File Structure
//
//	log:
//	  level: debug
//	  format: json
//	runtime:
//	  maxPasses: 500
//	fuzz:
//	  iterations: 50000
//	  alphabet: 4
//	  report: s3://my-bucket/fuzz.json
//	bench:
//	  size: 5000
//	serve:
//	  addr: ":9090"
//	  interval: 250ms
//	report:
//	  s3:
//	    region: eu-west-1
//	    endpoint: http://localhost:9000
//	    pathStyle: true
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Iterations:", cfg.Fuzz.Iterations)
package config
