package store

import "strings"

// NormalizeStoreURL reduces a storefront URL to its comparable form:
// lowercased host/path with the scheme, a leading "www." and any trailing
// slashes removed. Every URL comparison in the system goes through this one
// function so "https://www.Shop.com/" and "shop.com" resolve identically.
func NormalizeStoreURL(raw string) string {
	url := strings.ToLower(strings.TrimSpace(raw))
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "www.")
	url = strings.TrimRight(url, "/")
	return url
}
