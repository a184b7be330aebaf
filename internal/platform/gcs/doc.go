// Package gcs implements store.ObjectStore on Google Cloud Storage. One
// bucket holds all deck documents and media assets; keys are full object
// paths including the configured prefixes.
package gcs
