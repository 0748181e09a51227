// Package clientcli provides a client library for roster servers.
//
// It wraps the list, get, create, update and delete routes of every kind
// and the liveness check on /. Profiles in ~/.roster/config.yaml name the
// servers a user talks to.
//
// # Basic Usage
//
//	client, err := clientcli.New(&clientcli.Config{Endpoint: "http://localhost:3000"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rec, err := client.Create(ctx, "users", roster.Fields{"name": "Ann", "email": "ann@example.com"})
//
// Errors returned by the server are *APIError values and match the
// ErrNotFound, ErrBadRequest and ErrTooLarge sentinels with errors.Is.
//
// # Profile Configuration
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.Profile("staging")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// # Output Formatting
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatRecords(os.Stdout, "users", records)
package clientcli
