// Package session implements the live poker-session lifecycle engine: the
// Session aggregate, its state machine, and the key-value store contract
// that enforces the single-active-session invariant.
//
// A player holds at most one session record at a time, keyed by the
// token subject. The lifecycle is
//
//	absent ──Start──► ACTIVE ──End──► ENDED
//	   ▲                │                │
//	   └────Discard─────┴────Discard────┘      (or passive TTL expiry)
//
// Every accepted mutation increments the record's version by exactly
// one. Writes are conditional: Start succeeds only when no record exists
// (create-only), every other mutation only when the stored version still
// matches the one read (compare-and-swap). A plain read-modify-write is
// never performed, so concurrent operations for the same player race
// only at the store and the loser observes ErrSessionExists or
// ErrVersionConflict instead of silently overwriting.
//
// ACTIVE records carry a long TTL (default 48h) refreshed on every
// mutation; ENDED records are rewritten with a short TTL (default 30m)
// that gives the client time to read the final result before cleanup.
//
// The Manager is stateless: all durable state lives behind the Store
// interface. A Redis implementation and an in-memory test double ship
// with the package.
//
// # Usage
//
//	store := session.NewRedisStore(redisClient)
//	mgr := session.New(session.WithStore(store))
//
//	sess, err := mgr.Start(ctx, identity.Subject, session.StartParams{
//	    PlayerName: "Doyle",
//	    GameType:   session.GameTypeCash,
//	    Stake:      stake,
//	    BuyIn:      buyIn,
//	})
package session
