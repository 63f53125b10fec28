package ecdsa25519

// VerifyList counts how many of the prepared signatures are satisfied by
// distinct keys from pubkeys.
//
// The match is greedy and order dependent: contexts are taken in order and
// each is paired with the first unused key it verifies under. The count is
// therefore deterministic for a fixed input order but is not a maximum
// matching. pubkeys must not contain duplicates and every key must have
// passed IsValidPubkey.
func VerifyList(ctxs []*VerifyContext, pubkeys []*PublicKey) int {
	ret := 0
	used := make([]bool, len(pubkeys))

	for _, ctx := range ctxs {
		for j, pub := range pubkeys {
			if used[j] {
				continue
			}

			if ctx.Verify(pub) {
				ret++
				used[j] = true
				break
			}
		}
	}

	return ret
}
