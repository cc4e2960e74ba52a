// Package assetmix implements the asset-mixing proof collaborator named
// in spec §4.2 and §6: evidence that a transfer note mixing more than
// one asset type still balances per type, without revealing which
// records the prover grouped together.
//
// The grouping of a note's input and output records by hidden asset
// type never crosses into the serialized proof: Prove and Verify take
// only the raw, unpartitioned record commitment lists, mirroring the
// verifier-facing shape of the construction this package is modeled on
// (a flat list of input and output commitments plus one proof object,
// no index partition). Internally the prover still groups records by
// their cleartext type, but it proves that grouping with a per-record,
// per-group disjunctive Schnorr proof generalizing the CDS94
// bit-or-proof package rangeproof already uses for range checks: for
// every (record, candidate group) pair the prover shows the record
// either belongs to that group (its type matches the group's blinded
// anchor) or is excluded from it (its contribution to that group's
// running balance is exactly zero), without saying which. Only the
// count of distinct hidden types is public; which records share a type
// is not.
package assetmix

import (
	"io"

	"github.com/ccoin/xfr/internal/algebra"
	"github.com/ccoin/xfr/internal/pedersen"
	"github.com/ccoin/xfr/internal/rangeproof"
	"github.com/ccoin/xfr/pkg/xfrerr"
)

// netBits bounds a group's net amount (inputs minus outputs) proved
// non-negative: wider than a single 32-bit amount limb so sums over many
// records never wrap.
const netBits = 64

// Record is one input or output record's committed type and amount. The
// prover additionally supplies AssetType, TypeBlind, AmountBlind and
// Amount as its private opening; a verifier-side Record leaves those
// fields zero and is never used to extract them.
type Record struct {
	AssetType    [16]byte
	TypeCommit   algebra.G1
	TypeBlind    algebra.Scalar
	AmountCommit algebra.G1
	AmountBlind  algebra.Scalar
	Amount       uint64
}

// membershipProof is a CDS94-style OR proof that a record either
// belongs to one candidate hidden group (its type commitment matches
// the group's anchor and its exclusion marker for that group is a bare
// blinding commitment) or does not (its exclusion marker equals the
// record's own signed amount commitment, offset by a blind). Exactly
// one of the two branches is real; the proof does not say which.
type membershipProof struct {
	A0Excl, A0Type algebra.G1
	C0             algebra.Scalar
	S0Excl, S0Type algebra.Scalar

	A1Excl algebra.G1
	C1     algebra.Scalar
	S1Excl algebra.Scalar
}

// proveMembership builds a membershipProof for one (record, group) pair.
// dTarget is the record's signed amount commitment (the exclusion
// marker's value when excluded); typeDiff is the record's type
// commitment minus the group's anchor (zero-value when the record's
// type matches the anchor). included tells the real branch; dBlind and
// typeBlind are the prover's true openings for that branch (typeBlind is
// unused when included is false). It returns the proof together with
// the exclusion marker D the proof is built around.
func proveMembership(rng io.Reader, pp *pedersen.PublicParams, included bool, dTarget, typeDiff algebra.G1, dBlind, typeBlind algebra.Scalar) (membershipProof, algebra.G1, error) {
	var mp membershipProof

	var d algebra.G1
	if included {
		d = pp.H.Mul(dBlind)
	} else {
		d = dTarget.Add(pp.H.Mul(dBlind))
	}

	k0Excl, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	k0Type, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	k1Real, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	s0ExclFake, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	s0TypeFake, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	s1Fake, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	c0Fake, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}
	c1Fake, err := algebra.RandomScalar(rng)
	if err != nil {
		return membershipProof{}, algebra.G1{}, err
	}

	y0 := d            // included-branch target: d = s*H when the record truly belongs
	y1 := d.Sub(dTarget) // excluded-branch target: d - dTarget = s*H when truly excluded

	if included {
		mp.A0Excl = pp.H.Mul(k0Excl)
		mp.A0Type = pp.H.Mul(k0Type)
		mp.A1Excl = pp.H.Mul(s1Fake).Sub(y1.Mul(c1Fake))
		mp.C1 = c1Fake
		mp.S1Excl = s1Fake
	} else {
		mp.A1Excl = pp.H.Mul(k1Real)
		mp.A0Excl = pp.H.Mul(s0ExclFake).Sub(y0.Mul(c0Fake))
		mp.A0Type = pp.H.Mul(s0TypeFake).Sub(typeDiff.Mul(c0Fake))
		mp.C0 = c0Fake
		mp.S0Excl = s0ExclFake
		mp.S0Type = s0TypeFake
	}

	c := algebra.ScalarFromHash(mp.A0Excl.Bytes(), mp.A0Type.Bytes(), mp.A1Excl.Bytes(), d.Bytes(), dTarget.Bytes(), typeDiff.Bytes())
	if included {
		mp.C0 = c.Sub(mp.C1)
		mp.S0Excl = k0Excl.Add(mp.C0.Mul(dBlind))
		mp.S0Type = k0Type.Add(mp.C0.Mul(typeBlind))
	} else {
		mp.C1 = c.Sub(mp.C0)
		mp.S1Excl = k1Real.Add(mp.C1.Mul(dBlind))
	}
	return mp, d, nil
}

func verifyMembership(pp *pedersen.PublicParams, d, dTarget, typeDiff algebra.G1, mp membershipProof) bool {
	c := algebra.ScalarFromHash(mp.A0Excl.Bytes(), mp.A0Type.Bytes(), mp.A1Excl.Bytes(), d.Bytes(), dTarget.Bytes(), typeDiff.Bytes())
	if !c.Equal(mp.C0.Add(mp.C1)) {
		return false
	}
	y0 := d
	if !pp.H.Mul(mp.S0Excl).Equal(mp.A0Excl.Add(y0.Mul(mp.C0))) {
		return false
	}
	if !pp.H.Mul(mp.S0Type).Equal(mp.A0Type.Add(typeDiff.Mul(mp.C0))) {
		return false
	}
	y1 := d.Sub(dTarget)
	return pp.H.Mul(mp.S1Excl).Equal(mp.A1Excl.Add(y1.Mul(mp.C1)))
}

// groupProof is one hidden group's anchor, its per-record membership
// evidence, and the non-negativity proof over the group's net balance.
type groupProof struct {
	Anchor     algebra.G1
	Exclusions []algebra.G1
	Membership []membershipProof
	NetNonNeg  rangeproof.WideProof
}

// Proof is an asset-mixing proof: one groupProof per hidden asset type
// the prover claims the transfer mixes. No record index ever appears in
// it.
type Proof struct {
	Groups []groupProof
}

func signedAmountCommit(r Record, sign int) algebra.G1 {
	if sign < 0 {
		return r.AmountCommit.Neg()
	}
	return r.AmountCommit
}

func signedAmountBlind(r Record, sign int) algebra.Scalar {
	if sign < 0 {
		return r.AmountBlind.Neg()
	}
	return r.AmountBlind
}

func sumSignedCommits(inputs, outputs []algebra.G1) algebra.G1 {
	acc := algebra.G1Identity()
	for _, c := range inputs {
		acc = acc.Add(c)
	}
	for _, c := range outputs {
		acc = acc.Sub(c)
	}
	return acc
}

// distinctTypes returns the asset types present across inputs and
// outputs, first-appearance order.
func distinctTypes(inputs, outputs []Record) [][16]byte {
	seen := map[[16]byte]bool{}
	var order [][16]byte
	for _, r := range inputs {
		if !seen[r.AssetType] {
			seen[r.AssetType] = true
			order = append(order, r.AssetType)
		}
	}
	for _, r := range outputs {
		if !seen[r.AssetType] {
			seen[r.AssetType] = true
			order = append(order, r.AssetType)
		}
	}
	return order
}

// Prove builds an asset-mixing proof that inputs and outputs balance
// per hidden asset type. The grouping by type is computed internally
// from each record's AssetType opening and never appears in the
// returned Proof; an honest caller supplies records whose types and
// amounts genuinely balance per type.
func Prove(rng io.Reader, pp *pedersen.PublicParams, inputs, outputs []Record) (Proof, error) {
	if len(inputs)+len(outputs) == 0 {
		return Proof{}, xfrerr.ErrParameter
	}
	groupTypes := distinctTypes(inputs, outputs)
	if len(groupTypes) == 0 {
		return Proof{}, xfrerr.ErrParameter
	}

	type signedRec struct {
		rec  Record
		sign int
	}
	all := make([]signedRec, 0, len(inputs)+len(outputs))
	for _, r := range inputs {
		all = append(all, signedRec{r, 1})
	}
	for _, r := range outputs {
		all = append(all, signedRec{r, -1})
	}

	proof := Proof{Groups: make([]groupProof, len(groupTypes))}
	for ti, t := range groupTypes {
		anchorBlind, err := algebra.RandomScalar(rng)
		if err != nil {
			return Proof{}, err
		}
		anchor := pp.Commit(algebra.AssetTypeToScalar(t), anchorBlind)

		gp := groupProof{
			Anchor:     anchor,
			Exclusions: make([]algebra.G1, len(all)),
			Membership: make([]membershipProof, len(all)),
		}

		var sumIn, sumOut uint64
		netBlind := algebra.NewScalarFromUint64(0)

		for i, sr := range all {
			dTarget := signedAmountCommit(sr.rec, sr.sign)
			typeDiff := sr.rec.TypeCommit.Sub(anchor)
			included := sr.rec.AssetType == t

			dBlind, err := algebra.RandomScalar(rng)
			if err != nil {
				return Proof{}, err
			}

			var typeBlind algebra.Scalar
			if included {
				typeBlind = sr.rec.TypeBlind.Sub(anchorBlind)
				if sr.sign > 0 {
					sumIn += sr.rec.Amount
				} else {
					sumOut += sr.rec.Amount
				}
				netBlind = netBlind.Add(signedAmountBlind(sr.rec, sr.sign)).Sub(dBlind)
			} else {
				netBlind = netBlind.Sub(dBlind)
			}

			mp, d, err := proveMembership(rng, pp, included, dTarget, typeDiff, dBlind, typeBlind)
			if err != nil {
				return Proof{}, err
			}
			gp.Exclusions[i] = d
			gp.Membership[i] = mp
		}
		if sumIn < sumOut {
			return Proof{}, xfrerr.ErrCreationAssetAmount
		}
		netAmount := sumIn - sumOut

		netProof, err := rangeproof.ProveNonNegative(rng, pp, netAmount, netBlind, netBits)
		if err != nil {
			return Proof{}, err
		}
		gp.NetNonNeg = netProof
		proof.Groups[ti] = gp
	}

	return proof, nil
}

// Verify checks a mixing proof against the raw input and output record
// commitments it claims to cover. It never sees or reconstructs a
// partition: every record is checked against every group's membership
// evidence, and a group's net balance is recovered homomorphically from
// the published exclusion markers rather than from an explicit member
// list.
func Verify(pp *pedersen.PublicParams, inputs, outputs []Record, proof Proof) bool {
	if len(proof.Groups) == 0 {
		return false
	}

	inCommits := make([]algebra.G1, len(inputs))
	for i, r := range inputs {
		inCommits[i] = r.AmountCommit
	}
	outCommits := make([]algebra.G1, len(outputs))
	for i, r := range outputs {
		outCommits[i] = r.AmountCommit
	}
	total := sumSignedCommits(inCommits, outCommits)

	typeCommits := make([]algebra.G1, 0, len(inputs)+len(outputs))
	signedCommits := make([]algebra.G1, 0, len(inputs)+len(outputs))
	for _, r := range inputs {
		typeCommits = append(typeCommits, r.TypeCommit)
		signedCommits = append(signedCommits, r.AmountCommit)
	}
	for _, r := range outputs {
		typeCommits = append(typeCommits, r.TypeCommit)
		signedCommits = append(signedCommits, r.AmountCommit.Neg())
	}

	n := len(typeCommits)
	for _, gp := range proof.Groups {
		if len(gp.Exclusions) != n || len(gp.Membership) != n {
			return false
		}
		excludedSum := algebra.G1Identity()
		for i := 0; i < n; i++ {
			typeDiff := typeCommits[i].Sub(gp.Anchor)
			if !verifyMembership(pp, gp.Exclusions[i], signedCommits[i], typeDiff, gp.Membership[i]) {
				return false
			}
			excludedSum = excludedSum.Add(gp.Exclusions[i])
		}
		groupTotal := total.Sub(excludedSum)
		if !rangeproof.VerifyNonNegative(pp, groupTotal, gp.NetNonNeg) {
			return false
		}
	}
	return true
}

// Instance bundles one note's asset-mixing proof with the raw record
// commitments it opens, for BatchVerify.
type Instance struct {
	Inputs  []Record
	Outputs []Record
	Proof   Proof
}

// BatchVerify checks many asset-mixing instances pooled across notes, per
// spec §4.2's batched content verification; the first invalid instance
// fails the whole batch.
func BatchVerify(pp *pedersen.PublicParams, instances []Instance) error {
	for _, inst := range instances {
		if !Verify(pp, inst.Inputs, inst.Outputs, inst.Proof) {
			return xfrerr.ErrVerifyAssetMix
		}
	}
	return nil
}
