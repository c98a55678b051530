package merlin

import "github.com/bwesterb/go-ristretto"

const (
	SigningContextLabel = "SigningContext"
	schnorrSigProtoName = "Schnorr-sig"
)

// NewSigningContext returns the transcript schnorrkel signs and verifies
// msg under: context is the application signing context, e.g.
// "Fog authority signature".
func NewSigningContext(context, msg []byte) *Transcript {
	t := NewTranscript(SigningContextLabel)
	t.AppendMessage([]byte(""), context)
	t.AppendMessage([]byte("sign-bytes"), msg)
	return t
}

// SignatureChallenge commits a schnorrkel signature's public key and nonce
// commitment R and returns the challenge scalar k, so that a valid signature
// (R, s) satisfies s*B = R + k*A. Both points are compressed ristretto
// encodings.
func (t *Transcript) SignatureChallenge(publicKey, R []byte) *ristretto.Scalar {
	t.AppendMessage([]byte("proto-name"), []byte(schnorrSigProtoName))
	t.AppendMessage([]byte("sign:pk"), publicKey)
	t.AppendMessage([]byte("sign:R"), R)
	return t.ChallengeScalar("sign:c")
}
