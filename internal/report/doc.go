// Package report renders the plain text complaint summary and saves it.
package report
