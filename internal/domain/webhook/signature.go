// Package webhook implementa la verificación de firmas HMAC de payloads
// entrantes de integraciones externas.
//
// El contrato es estricto: VerifySignature devuelve false ante cualquier
// entrada malformada (hex inválido, longitud incorrecta, algoritmo
// desconocido) y nunca produce pánico ni error. La comparación usa
// subtle.ConstantTimeCompare para no filtrar por tiempo cuántos bytes
// coinciden con la firma esperada.
package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
)

// Algoritmos soportados. Cualquier otro valor falla la verificación.
const (
	AlgorithmSHA256 = "sha256"
	AlgorithmSHA1   = "sha1"
	AlgorithmSHA512 = "sha512"
)

// VerifySignature calcula HMAC(algorithm, secret, payload) y lo compara en
// tiempo constante contra signature (hex). La firma de longitud distinta al
// digest esperado se rechaza antes de comparar: el primitivo de comparación
// exige buffers de igual longitud.
func VerifySignature(payload []byte, signature, secret, algorithm string) bool {
	if secret == "" || signature == "" {
		return false
	}
	newHash := hashFor(algorithm)
	if newHash == nil {
		return false
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	if len(provided) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(provided, expected) == 1
}

// Sign genera la firma hex de un payload (lado emisor; útil en tests y en la
// sincronización outbound simulada).
func Sign(payload []byte, secret, algorithm string) (string, bool) {
	newHash := hashFor(algorithm)
	if newHash == nil || secret == "" {
		return "", false
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil)), true
}

func hashFor(algorithm string) func() hash.Hash {
	switch algorithm {
	case AlgorithmSHA256, "":
		return sha256.New
	case AlgorithmSHA1:
		return sha1.New
	case AlgorithmSHA512:
		return sha512.New
	default:
		return nil
	}
}
