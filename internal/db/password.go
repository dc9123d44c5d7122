package db

import "os"

// ResolvePassword returns the password to connect with. A non-empty value
// from the .env file wins, then PGPASSWORD, then empty.
func ResolvePassword(fromFile string) string {
	if fromFile != "" {
		return fromFile
	}
	if pw, ok := os.LookupEnv("PGPASSWORD"); ok {
		return pw
	}
	return ""
}
