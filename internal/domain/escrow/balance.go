package escrow

// DefaultMaxDust is the residual spendable balance below which a project may
// be closed (10^24 smallest units).
var DefaultMaxDust = MustParseAmount("1000000000000000000000000")

// Env carries the per-call facts supplied by the host: who is calling, what
// value they attached, and the storage figures the reserve is priced from.
// It is rebuilt for every operation and never cached.
type Env struct {
	Caller       AccountID
	Deposit      Amount
	StorageBytes uint64
	ByteCost     Amount
}

// Reserved is the part of the held balance that pays for persisted data.
func (e Env) Reserved() Amount {
	return e.ByteCost.mulUint64Saturating(e.StorageBytes)
}

// SpendableBalance is held minus the storage reserve, floored at zero.
func SpendableBalance(held Amount, env Env) Amount {
	return held.SaturatingSub(env.Reserved())
}
