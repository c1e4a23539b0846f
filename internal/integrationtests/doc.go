// Package integrationtests holds end-to-end scenarios that run real mod
// directories through the application, from discovery to validation.
package integrationtests
