// Package lunchmenu aggregates daily lunch menus published on restaurant
// websites. It turns loosely structured HTML pages and PDF text into a
// uniform list of meals, caches the results and serves them per restaurant.
//
// This package contains domain types, interfaces and the pure, line-oriented
// extraction pipeline, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, goquery/, pdf/).
package lunchmenu
