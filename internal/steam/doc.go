// Package steam talks to the two public Steam endpoints gamecat consumes: the
// full application directory (ISteamApps/GetAppList) and the storefront
// appdetails lookup.
//
// The client performs no retries and sets no timeout of its own; callers pass an
// http.Client configured with the deadline they want. Storefront payloads are
// loosely typed (required_age arrives as a number or a string, lists may be
// absent), so AppDetails reads them with gjson rather than a fixed struct.
package steam
