package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"aesgcm/internal/auth"
	"aesgcm/internal/models"
	"aesgcm/internal/services/vector"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func sp(s string) *string { return &s }

// ioRow normalizes the generator record types for persistence.
type ioRow struct {
	Count  int
	Params map[string]any
	Input  string
	Output string
	Tag    string
	Fail   bool
}

func vectorRows(subject, batchID, algorithm, mode, testMode, direction string, keyBits int, rows []ioRow) []models.Vector {
	out := make([]models.Vector, 0, len(rows))
	for _, r := range rows {
		v := models.Vector{
			BatchID:   batchID,
			Subject:   subject,
			Algorithm: algorithm,
			Mode:      mode,
			TestMode:  testMode,
			Direction: direction,
			KeyBits:   keyBits,
			Params:    models.MarshalJSONB(r.Params),
			InputHex:  sp(strings.ToLower(r.Input)),
			OutputHex: sp(strings.ToLower(r.Output)),
			Status:    "ready",
		}
		if r.Tag != "" {
			v.TagHex = sp(strings.ToLower(r.Tag))
		}
		if r.Fail {
			v.Status = "fail"
			v.OutputHex = nil
		}
		out = append(out, v)
	}
	return out
}

func attachment(w http.ResponseWriter, name, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	_, _ = w.Write([]byte(body))
}

type gcmGenReq struct {
	Algorithm string `json:"algorithm"`
	vector.GCMGenParams
	Format string `json:"format"`
}

// GenerateGCMVectors handles POST /v1/vectors/gcm/generate.
func GenerateGCMVectors(st Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gcmGenReq
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vec, err := vector.GenerateGCMTestVectors(req.Algorithm, req.GCMGenParams)
		if err != nil {
			respondError(w, err)
			return
		}

		enc := make([]ioRow, 0, len(vec.Encrypt))
		for _, e := range vec.Encrypt {
			enc = append(enc, ioRow{
				Count:  e.Count,
				Params: map[string]any{"count": e.Count, "key": e.KeyHex, "iv": e.IVHex, "aad": e.AADHex},
				Input:  e.Plaintext,
				Output: e.Ciphertext,
				Tag:    e.TagHex,
			})
		}
		dec := make([]ioRow, 0, len(vec.Decrypt))
		for _, d := range vec.Decrypt {
			dec = append(dec, ioRow{
				Count:  d.Count,
				Params: map[string]any{"count": d.Count, "key": d.KeyHex, "iv": d.IVHex, "aad": d.AADHex},
				Input:  d.Ciphertext,
				Output: d.Plaintext,
				Tag:    d.TagHex,
				Fail:   d.Fail,
			})
		}

		subject := auth.Subject(r.Context())
		batchID := uuid.NewString()
		rows := vectorRows(subject, batchID, vec.Algorithm, vec.Mode, "", "ENCRYPT", vec.KeyBits, enc)
		rows = append(rows, vectorRows(subject, batchID, vec.Algorithm, vec.Mode, "", "DECRYPT", vec.KeyBits, dec)...)
		if err := st.SaveVectors(r.Context(), rows); err != nil {
			lg.Errorw("save vectors", "batch_id", batchID, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		audit(r, st, lg, "VECTOR_GENERATE_GCM", map[string]any{
			"batch_id": batchID, "algorithm": vec.Algorithm, "key_bits": vec.KeyBits, "count": len(vec.Encrypt),
		})
		lg.Infow("generated gcm vectors", "batch_id", batchID, "algorithm", vec.Algorithm, "key_bits", vec.KeyBits)

		w.Header().Set("X-Batch-ID", batchID)
		if strings.EqualFold(req.Format, "rsp") {
			attachment(w, fmt.Sprintf("%s_gcm_%d.rsp", strings.ToLower(vec.Algorithm), vec.KeyBits), vec.ToRSP())
			return
		}
		respondJSON(w, vec.Public())
	}
}

// ValidateGCMVectors handles POST /v1/vectors/gcm/validate with a multipart
// "file" and an optional "algorithm" field.
func ValidateGCMVectors(st Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "multipart parse error", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		recs, err := vector.ParseGCMVectorFile(file)
		if err != nil {
			http.Error(w, "parse error: "+err.Error(), http.StatusBadRequest)
			return
		}
		result, err := vector.ValidateGCMWith(r.FormValue("algorithm"), recs)
		if err != nil {
			http.Error(w, "validate error: "+err.Error(), http.StatusBadRequest)
			return
		}

		subject := auth.Subject(r.Context())
		run := &models.ValidationRun{
			Subject:   subject,
			Algorithm: result.Algorithm + "-GCM",
			Total:     result.Total,
			Passed:    result.Passed,
			Failed:    result.Failed,
			Skipped:   result.Skipped,
			Failures:  models.MarshalJSONB(result.Failures),
		}
		if err := st.SaveValidation(r.Context(), run); err != nil {
			lg.Errorw("save validation", "subject", subject, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		audit(r, st, lg, "VALIDATE_GCM", map[string]any{"validation_id": run.ID, "algorithm": run.Algorithm, "result": result})
		respondJSON(w, map[string]any{"validation_id": run.ID, "result": result})
	}
}

type aesGenReq struct {
	TestMode string `json:"test_mode"`
	vector.AESGenParams
	Format string `json:"format"`
}

// GenerateAESVectors handles POST /v1/vectors/aes/generate.
func GenerateAESVectors(st Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req aesGenReq
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vec, err := vector.GenerateAESTestVectors(req.TestMode, req.AESGenParams)
		if err != nil {
			respondError(w, err)
			return
		}

		enc := make([]ioRow, 0, len(vec.Encrypt))
		for _, e := range vec.Encrypt {
			enc = append(enc, ioRow{Count: e.Count, Params: map[string]any{"count": e.Count, "key": e.KeyHex}, Input: e.Plaintext, Output: e.Ciphertext})
		}
		dec := make([]ioRow, 0, len(vec.Decrypt))
		for _, d := range vec.Decrypt {
			dec = append(dec, ioRow{Count: d.Count, Params: map[string]any{"count": d.Count, "key": d.KeyHex}, Input: d.Ciphertext, Output: d.Plaintext})
		}

		subject := auth.Subject(r.Context())
		batchID := uuid.NewString()
		rows := vectorRows(subject, batchID, vec.Algorithm, vec.Mode, vec.TestMode, "ENCRYPT", vec.KeyBits, enc)
		rows = append(rows, vectorRows(subject, batchID, vec.Algorithm, vec.Mode, vec.TestMode, "DECRYPT", vec.KeyBits, dec)...)
		if err := st.SaveVectors(r.Context(), rows); err != nil {
			lg.Errorw("save vectors", "batch_id", batchID, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		audit(r, st, lg, "VECTOR_GENERATE_AES", map[string]any{
			"batch_id": batchID, "test_mode": vec.TestMode, "key_bits": vec.KeyBits, "count": len(vec.Encrypt),
		})

		w.Header().Set("X-Batch-ID", batchID)
		if strings.EqualFold(req.Format, "txt") {
			attachment(w, fmt.Sprintf("aes_ecb_%s_%d.txt", strings.ToLower(vec.TestMode), vec.KeyBits), vec.ToTXT())
			return
		}
		respondJSON(w, vec)
	}
}

// GenerateGCTRVector handles POST /v1/vectors/gctr/generate.
func GenerateGCTRVector(st Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vector.GCTRParams
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out, used, err := vector.GenerateGCTR(req)
		if err != nil {
			respondError(w, err)
			return
		}

		subject := auth.Subject(r.Context())
		batchID := uuid.NewString()
		rows := vectorRows(subject, batchID, vector.AlgAES, "GCTR", "", "ENCRYPT", len(used.KeyHex)*4, []ioRow{{
			Params: map[string]any{"key": used.KeyHex, "icb": used.ICBHex},
			Input:  used.InputHex,
			Output: out,
		}})
		if err := st.SaveVectors(r.Context(), rows); err != nil {
			lg.Errorw("save vectors", "batch_id", batchID, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		audit(r, st, lg, "VECTOR_GENERATE_GCTR", map[string]any{"batch_id": batchID, "vector_id": rows[0].ID})
		respondJSON(w, map[string]any{
			"vector_id":  rows[0].ID,
			"params":     used,
			"input_hex":  used.InputHex,
			"output_hex": out,
		})
	}
}

// SelfTest runs the known-answer catalogue against the local implementation.
func SelfTest(lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep := vector.RunKnownAnswers()
		code := http.StatusOK
		if !rep.Passed {
			code = http.StatusInternalServerError
			lg.Errorw("known-answer self test failed", "failed", rep.Failed, "total", rep.Total)
		}
		respondStatus(w, code, rep)
	}
}
