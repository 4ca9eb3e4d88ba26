package dlc

import "errors"

// Sentinel errors for the protocol's failure taxonomy. Callers should use
// errors.Is against these; wrapped context is added with fmt.Errorf("...: %w").
var (
	// ErrBadMessage signals a structural invariant violated by the peer
	// (bucket_mapping out of range, wrong openings count, and similar).
	ErrBadMessage = errors.New("dlc: bad message")

	// ErrOpeningMismatch signals an opened commitment inconsistent with
	// the randomness the peer disclosed for it.
	ErrOpeningMismatch = errors.New("dlc: opening mismatch")

	// ErrPadInconsistent signals a secret-share-pad image mismatch.
	ErrPadInconsistent = errors.New("dlc: pad inconsistent")

	// ErrDLEQInvalid signals a DLEQ proof failed to verify for a ciphertext.
	ErrDLEQInvalid = errors.New("dlc: dleq proof invalid")

	// ErrPaddedShareInvalid signals that s̃·G != R + T·G for a ciphertext.
	ErrPaddedShareInvalid = errors.New("dlc: padded share invalid")

	// ErrAllCiphertextsMalicious signals that no replica in an oracle's
	// bucket decrypted to the expected bit-pad image; the oracle is
	// dropped, not the whole session.
	ErrAllCiphertextsMalicious = errors.New("dlc: all ciphertexts in bucket malicious")

	// ErrInsufficientShares signals fewer than the threshold of oracles
	// yielded a valid share during reconstruction.
	ErrInsufficientShares = errors.New("dlc: insufficient shares")

	// ErrReconstructionMismatch signals the interpolated secret's image
	// differs from the outcome's public image.
	ErrReconstructionMismatch = errors.New("dlc: reconstruction mismatch")
)
