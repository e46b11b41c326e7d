package handlers

import (
	"errors"
	"net/http"

	"aesgcm/aes"
	"aesgcm/gcm"
	"aesgcm/internal/auth"
	"aesgcm/internal/services/vector"
	"aesgcm/internal/util"

	"go.uber.org/zap"
)

type blockReq struct {
	KeyHex   string `json:"key_hex"`
	BlockHex string `json:"block_hex"`
}

type blockResp struct {
	BlockHex string `json:"block_hex"`
}

func AESEncrypt(lg *zap.SugaredLogger) http.HandlerFunc {
	return aesBlock(lg, (*aes.Cipher).Encrypt)
}

func AESDecrypt(lg *zap.SugaredLogger) http.HandlerFunc {
	return aesBlock(lg, (*aes.Cipher).Decrypt)
}

func aesBlock(lg *zap.SugaredLogger, op func(*aes.Cipher, []byte) ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blockReq
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		key, err := util.DecodeHex("key_hex", req.KeyHex)
		if err != nil {
			respondError(w, err)
			return
		}
		block, err := util.DecodeHex("block_hex", req.BlockHex)
		if err != nil {
			respondError(w, err)
			return
		}
		c, err := aes.NewCipher(key)
		if err != nil {
			respondError(w, err)
			return
		}
		out, err := op(c, block)
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Debugw("aes block", "subject", auth.Subject(r.Context()), "key_bits", c.KeySize()*8)
		respondJSON(w, blockResp{BlockHex: util.EncodeHex(out)})
	}
}

type sealReq struct {
	Algorithm    string `json:"algorithm"`
	KeyHex       string `json:"key_hex"`
	IVHex        string `json:"iv_hex"`
	AADHex       string `json:"aad_hex"`
	PlaintextHex string `json:"plaintext_hex"`
}

type sealResp struct {
	CiphertextHex string `json:"ciphertext_hex"`
	TagHex        string `json:"tag_hex"`
}

type openReq struct {
	Algorithm     string `json:"algorithm"`
	KeyHex        string `json:"key_hex"`
	IVHex         string `json:"iv_hex"`
	AADHex        string `json:"aad_hex"`
	CiphertextHex string `json:"ciphertext_hex"`
	TagHex        string `json:"tag_hex"`
}

type openResp struct {
	PlaintextHex string `json:"plaintext_hex"`
}

// decodeFields decodes hex request fields in order, stopping at the first error.
func decodeFields(pairs ...string) ([][]byte, error) {
	out := make([][]byte, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		b, err := util.DecodeHex(pairs[i], pairs[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func GCMSeal(cache *vector.CipherCache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sealReq
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, err := decodeFields(
			"key_hex", req.KeyHex,
			"iv_hex", req.IVHex,
			"aad_hex", req.AADHex,
			"plaintext_hex", req.PlaintextHex,
		)
		if err != nil {
			respondError(w, err)
			return
		}
		g, err := cache.Get(req.Algorithm, f[0])
		if err != nil {
			respondError(w, err)
			return
		}
		ct, tag, err := g.Encrypt(f[3], f[1], f[2])
		if err != nil {
			respondError(w, err)
			return
		}
		lg.Debugw("gcm seal", "subject", auth.Subject(r.Context()), "algorithm", req.Algorithm, "pt_len", len(f[3]), "aad_len", len(f[2]))
		respondJSON(w, sealResp{CiphertextHex: util.EncodeHex(ct), TagHex: util.EncodeHex(tag)})
	}
}

func GCMOpen(cache *vector.CipherCache, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openReq
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, err := decodeFields(
			"key_hex", req.KeyHex,
			"iv_hex", req.IVHex,
			"aad_hex", req.AADHex,
			"ciphertext_hex", req.CiphertextHex,
			"tag_hex", req.TagHex,
		)
		if err != nil {
			respondError(w, err)
			return
		}
		g, err := cache.Get(req.Algorithm, f[0])
		if err != nil {
			respondError(w, err)
			return
		}
		pt, err := g.Decrypt(f[3], f[1], f[2], f[4])
		if err != nil {
			if errors.Is(err, gcm.ErrAuthenticationFailure) {
				lg.Infow("gcm open rejected", "subject", auth.Subject(r.Context()))
			}
			respondError(w, err)
			return
		}
		respondJSON(w, openResp{PlaintextHex: util.EncodeHex(pt)})
	}
}

// CacheStats reports cipher cache effectiveness.
func CacheStats(cache *vector.CipherCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hits, misses := cache.Stats()
		respondJSON(w, map[string]int{"hits": hits, "misses": misses})
	}
}
