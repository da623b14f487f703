// Package customer holds the customer directory used by coupon issuance and merchant lookups.
package customer
