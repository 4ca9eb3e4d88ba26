// Command dlcrun drives one end-to-end protocol session between a Dealer,
// a Receiver and a set of Oracles, printing round timings and message
// sizes. It is a thin external collaborator, not part of the tested core
// (spec.md §1 Non-goals, §6 CLI surface).
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"time"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/llfourn/dlc-venc-go/dlc"
	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

func main() {
	s := flag.Float64("s", 16, "security parameter in bits")
	nOutcomes := flag.Int("n-outcomes", 4, "number of outcomes")
	nOracles := flag.Int("n-oracles", 1, "number of oracles")
	threshold := flag.Int("threshold", 1, "oracle signature threshold")
	monotone := flag.Bool("monotone", false, "use monotone outcome encoding")
	flag.Parse()

	if err := run(*s, *nOutcomes, *nOracles, *threshold, *monotone); err != nil {
		fmt.Fprintln(os.Stderr, "dlcrun:", err)
		os.Exit(1)
	}
}

func run(s float64, nOutcomes, nOracles, threshold int, monotone bool) error {
	rng := rand.Reader

	oracles := make([]dlc.Oracle, nOracles)
	oracleKeys := make([]bls12381.G1Affine, nOracles)
	for j := range oracles {
		o, err := dlc.NewOracle(rng)
		if err != nil {
			return err
		}
		oracles[j] = o
		oracleKeys[j] = o.Pk
	}

	elGamalBase, err := gt.Sample(rng)
	if err != nil {
		return err
	}

	secrets := make([]chaincurve.Scalar, nOutcomes)
	images := make([]chaincurve.Point, nOutcomes)
	for o := range secrets {
		sk, err := chaincurve.RandomScalar(rng)
		if err != nil {
			return err
		}
		secrets[o] = sk
		images[o] = chaincurve.ScalarBaseMult(sk)
	}

	eventID := fmt.Sprintf("dlcrun-event-%d", os.Getpid())
	params, err := dlc.NewParams(s, oracleKeys, eventID, nOutcomes, threshold, elGamalBase, monotone)
	if err != nil {
		return err
	}
	fmt.Printf("params: p=%.3f B=%d M=%d NB=%d\n", params.P, params.B, params.M(), params.NB())

	t0 := time.Now()
	dealer, msg1, err := dlc.NewDealer(rng, params, secrets)
	if err != nil {
		return err
	}
	fmt.Printf("Message1: %d commitments (%s)\n", len(msg1.Commits), time.Since(t0))

	t1 := time.Now()
	receiver, msg2, err := dlc.NewReceiver(rng, params, msg1)
	if err != nil {
		return err
	}
	fmt.Printf("Message2: %d openings, %d bucket positions (%s)\n", len(msg2.Openings), len(msg2.BucketMapping), time.Since(t1))

	t2 := time.Now()
	msg3, err := dealer.ReceiveMessage2(msg2)
	if err != nil {
		return err
	}
	fmt.Printf("Message3: %d encryptions (%s)\n", len(msg3.Encryptions), time.Since(t2))

	t3 := time.Now()
	if err := receiver.ReceiveMessage3(msg3, images); err != nil {
		return err
	}
	fmt.Printf("Message3 verified (%s)\n", time.Since(t3))

	outcome := nOutcomes / 2
	sigsByOracle := make(map[int][]bls12381.G2Affine, nOracles)
	for j, o := range oracles {
		bits, err := o.Attest(eventID, params.NOutcomeBits(), outcome)
		if err != nil {
			return err
		}
		sigsByOracle[j] = bits
	}

	t4 := time.Now()
	secret, err := receiver.ReceiveAttestation(outcome, sigsByOracle)
	if err != nil {
		return err
	}
	fmt.Printf("Reconstructed outcome %d secret in %s\n", outcome, time.Since(t4))

	if !chaincurve.ScalarBaseMult(secret).Equal(images[outcome]) {
		return fmt.Errorf("reconstructed secret does not match outcome image")
	}
	fmt.Println("OK")
	return nil
}
