// Package account models logins, their role and the profile each one acts for.
package account
