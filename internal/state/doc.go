// Package state provides the thread-safe session cache for the console.
//
// The Store holds the most recent server-fetched books and orders. Refresh
// commands run on their own goroutines and write through UpdateBooks and
// UpdateOrders; the UI reads with Snapshot, which returns deep copies so
// renders never observe a torn update.
//
// Collections are replaced wholesale, never patched. A failed refresh
// records the error but keeps the previous data for that collection, so a
// flaky server degrades the display instead of blanking it. Reset drops
// everything at logout.
//
// Snapshot.Stats derives the dashboard aggregates (order counts, revenue,
// low-stock books) from whatever is currently cached.
package state
