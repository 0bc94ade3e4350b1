// Package report writes run reports of the reactor tools to their
// destination.
//
// A destination is a file path, "-" for standard output, or an S3 object
// URL of the form s3://bucket/key:
//
//	sink, err := report.Open("s3://ci-artifacts/fuzz.json", cfg.Report.S3)
//	if err != nil {
//	    return err
//	}
//	err = sink.Write(ctx, data)
//
// S3 credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN. Without them requests are sent unsigned.
package report
