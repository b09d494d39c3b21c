package signature

import "testing"

func TestValid_CorrectSignature(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"TX123"}}`)
	secret := "sk_test_secret"

	sig := Compute(body, secret)
	if !Valid(body, sig, secret) {
		t.Fatal("expected signature to verify")
	}
}

func TestValid_TamperedBody(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"TX123"}}`)
	secret := "sk_test_secret"
	sig := Compute(body, secret)

	// flipping any single byte must break verification
	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[len(tampered)/2] ^= 0x01

	if Valid(tampered, sig, secret) {
		t.Fatal("tampered body must not verify")
	}
}

func TestValid_WrongSecret(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	sig := Compute(body, "sk_test_secret")

	if Valid(body, sig, "sk_other_secret") {
		t.Fatal("signature under different secret must not verify")
	}
}

func TestValid_MalformedHex(t *testing.T) {
	if Valid([]byte("{}"), "not-hex-at-all", "sk_test_secret") {
		t.Fatal("malformed hex signature must not verify")
	}
	if Valid([]byte("{}"), "", "sk_test_secret") {
		t.Fatal("empty signature must not verify")
	}
}
