// Package web serves the FireHorse USA site: the home, about, media, and
// registration pages, plus the JSON alias check used by the registration
// page script.
//
// Pages render on the server. Accounts and images live in the remote CMS;
// this process keeps only short-lived per-form registration state and an
// optional local ledger of uploads.
package web
