// Package offer holds restaurant discount offers, the public listing of the platform.
package offer
