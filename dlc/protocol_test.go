package dlc

import (
	"errors"
	"io"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

type session struct {
	params  Params
	oracles []Oracle
	secrets []chaincurve.Scalar
	images  []chaincurve.Point
	eventID string
}

func newSession(t *testing.T, rng io.Reader, s float64, nOutcomes, nOracles, threshold int, monotone bool, outcomeSecrets []int64) session {
	t.Helper()

	oracles := make([]Oracle, nOracles)
	oracleKeys := make([]bls12381.G1Affine, nOracles)
	for j := range oracles {
		o, err := NewOracle(rng)
		if err != nil {
			t.Fatalf("NewOracle: %v", err)
		}
		oracles[j] = o
		oracleKeys[j] = o.Pk
	}

	elGamalBase, err := gt.Sample(rng)
	if err != nil {
		t.Fatalf("gt.Sample: %v", err)
	}

	secrets := make([]chaincurve.Scalar, nOutcomes)
	images := make([]chaincurve.Point, nOutcomes)
	for o := 0; o < nOutcomes; o++ {
		var sk chaincurve.Scalar
		if outcomeSecrets != nil {
			sk = chaincurve.ScalarFromInt(uint32(outcomeSecrets[o]))
		} else {
			sk, err = chaincurve.RandomScalar(rng)
			if err != nil {
				t.Fatalf("RandomScalar: %v", err)
			}
		}
		secrets[o] = sk
		images[o] = chaincurve.ScalarBaseMult(sk)
	}

	params, err := NewParams(s, oracleKeys, "test-event", nOutcomes, threshold, elGamalBase, monotone)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}

	return session{params: params, oracles: oracles, secrets: secrets, images: images, eventID: "test-event"}
}

func runToMessage3(t *testing.T, rng io.Reader, sess session) (*Dealer, *Receiver, Message3) {
	t.Helper()

	dealer, msg1, err := NewDealer(rng, sess.params, sess.secrets)
	if err != nil {
		t.Fatalf("NewDealer: %v", err)
	}
	receiver, msg2, err := NewReceiver(rng, sess.params, msg1)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	msg3, err := dealer.ReceiveMessage2(msg2)
	if err != nil {
		t.Fatalf("ReceiveMessage2: %v", err)
	}
	if err := receiver.ReceiveMessage3(msg3, sess.images); err != nil {
		t.Fatalf("ReceiveMessage3: %v", err)
	}
	return dealer, receiver, msg3
}

// S1: s=16, N=4, O=1, t=1, monotone=false. Secrets [1,2,3,4]; oracle
// attests outcome=2; Receiver must recover secret 3.
func TestScenarioS1HonestSingleOracle(t *testing.T) {
	rng := newDeterministicRNG(1)
	sess := newSession(t, rng, 16, 4, 1, 1, false, []int64{1, 2, 3, 4})
	_, receiver, _ := runToMessage3(t, rng, sess)

	outcome := 2
	sigs, err := sess.oracles[0].Attest(sess.eventID, sess.params.NOutcomeBits(), outcome)
	if err != nil {
		t.Fatalf("Attest: %v", err)
	}
	secret, err := receiver.ReceiveAttestation(outcome, map[int][]bls12381.G2Affine{0: sigs})
	if err != nil {
		t.Fatalf("ReceiveAttestation: %v", err)
	}
	if !chaincurve.ScalarBaseMult(secret).Equal(sess.images[outcome]) {
		t.Fatalf("reconstructed secret does not match outcome %d image", outcome)
	}
}

// S2: s=20, N=8, O=3, t=2, monotone=false. Oracles 0 and 2 attest
// outcome=5 and oracle 1 is silent; the Receiver must still reconstruct.
// The wrong-signature variant (S4) and the insufficient-shares variant are
// separate tests below.
func TestScenarioS2ThresholdRecovery(t *testing.T) {
	rng := newDeterministicRNG(2)
	sess := newSession(t, rng, 20, 8, 3, 2, false, nil)
	_, receiver, _ := runToMessage3(t, rng, sess)

	outcome := 5
	sigs0, err := sess.oracles[0].Attest(sess.eventID, sess.params.NOutcomeBits(), outcome)
	if err != nil {
		t.Fatalf("Attest: %v", err)
	}
	sigs2, err := sess.oracles[2].Attest(sess.eventID, sess.params.NOutcomeBits(), outcome)
	if err != nil {
		t.Fatalf("Attest: %v", err)
	}

	secret, err := receiver.ReceiveAttestation(outcome, map[int][]bls12381.G2Affine{0: sigs0, 2: sigs2})
	if err != nil {
		t.Fatalf("ReceiveAttestation with oracle 1 silent: %v", err)
	}
	if !chaincurve.ScalarBaseMult(secret).Equal(sess.images[outcome]) {
		t.Fatalf("reconstructed secret mismatch with oracle 1 silent")
	}
}

// S4: oracle 1 signs the wrong outcome (4 instead of 5); its signatures
// fail verification and are dropped, but oracles 0 and 2 still reconstruct.
func TestScenarioS4WrongOracleSignature(t *testing.T) {
	rng := newDeterministicRNG(4)
	sess := newSession(t, rng, 20, 8, 3, 2, false, nil)
	_, receiver, _ := runToMessage3(t, rng, sess)

	outcome := 5
	sigs0, _ := sess.oracles[0].Attest(sess.eventID, sess.params.NOutcomeBits(), outcome)
	sigs1Wrong, _ := sess.oracles[1].Attest(sess.eventID, sess.params.NOutcomeBits(), 4)
	sigs2, _ := sess.oracles[2].Attest(sess.eventID, sess.params.NOutcomeBits(), outcome)

	secret, err := receiver.ReceiveAttestation(outcome, map[int][]bls12381.G2Affine{0: sigs0, 1: sigs1Wrong, 2: sigs2})
	if err != nil {
		t.Fatalf("ReceiveAttestation: %v", err)
	}
	if !chaincurve.ScalarBaseMult(secret).Equal(sess.images[outcome]) {
		t.Fatalf("reconstructed secret mismatch despite valid threshold from oracles 0 and 2")
	}
}

// S2 (both silent variant): with fewer than t valid oracles, reconstruction
// must fail with InsufficientShares.
func TestScenarioS2BothSilentInsufficientShares(t *testing.T) {
	rng := newDeterministicRNG(22)
	sess := newSession(t, rng, 20, 8, 3, 2, false, nil)
	_, receiver, _ := runToMessage3(t, rng, sess)

	outcome := 5
	sigs0, _ := sess.oracles[0].Attest(sess.eventID, sess.params.NOutcomeBits(), outcome)

	_, err := receiver.ReceiveAttestation(outcome, map[int][]bls12381.G2Affine{0: sigs0})
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("expected ErrInsufficientShares, got %v", err)
	}
}

// S3: tampering with one ciphertext in Message3 must cause DLEQInvalid.
func TestScenarioS3TamperedCiphertext(t *testing.T) {
	rng := newDeterministicRNG(3)
	sess := newSession(t, rng, 16, 4, 1, 1, false, nil)

	dealer, msg1, err := NewDealer(rng, sess.params, sess.secrets)
	if err != nil {
		t.Fatalf("NewDealer: %v", err)
	}
	receiver, msg2, err := NewReceiver(rng, sess.params, msg1)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}
	msg3, err := dealer.ReceiveMessage2(msg2)
	if err != nil {
		t.Fatalf("ReceiveMessage2: %v", err)
	}

	tampered, err := gt.Sample(rng)
	if err != nil {
		t.Fatalf("gt.Sample: %v", err)
	}
	msg3.Encryptions[0].Ciphertext = tampered

	err = receiver.ReceiveMessage3(msg3, sess.images)
	if !errors.Is(err, ErrDLEQInvalid) {
		t.Fatalf("expected ErrDLEQInvalid, got %v", err)
	}
}

// S5: s=10, N=2, O=1, t=1, monotone=true. The parameter engine must return
// parameters without error; we check that B is positive and that p lies in
// the search range.
func TestScenarioS5MonotoneParams(t *testing.T) {
	p, b, err := ComputeOptimalParams(10, 2, 1, true)
	if err != nil {
		t.Fatalf("ComputeOptimalParams: %v", err)
	}
	if b < 1 {
		t.Fatalf("expected a positive bucket size, got %d", b)
	}
	if p < 0.5 || p > 0.998 {
		t.Fatalf("p=%v out of search range", p)
	}
}

// S6: replaying Message2 with |openings| = M-NB-1 must return BadMessage.
func TestScenarioS6BadOpeningsCount(t *testing.T) {
	rng := newDeterministicRNG(6)
	sess := newSession(t, rng, 16, 4, 1, 1, false, nil)

	dealer, msg1, err := NewDealer(rng, sess.params, sess.secrets)
	if err != nil {
		t.Fatalf("NewDealer: %v", err)
	}
	_, msg2, err := NewReceiver(rng, sess.params, msg1)
	if err != nil {
		t.Fatalf("NewReceiver: %v", err)
	}

	for idx := range msg2.Openings {
		delete(msg2.Openings, idx)
		break
	}

	_, err = dealer.ReceiveMessage2(msg2)
	if !errors.Is(err, ErrBadMessage) {
		t.Fatalf("expected ErrBadMessage, got %v", err)
	}
}
