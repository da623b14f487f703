// Package coupon implements discount coupons: issuance with AAA-00000 codes, the
// disclosure-aware validation lookup, and one-way redemption by the owning restaurant.
package coupon
