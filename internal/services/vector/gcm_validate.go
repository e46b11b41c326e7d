package vector

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"aesgcm/gcm"
	"aesgcm/internal/util"
)

// GCMRecord is one Count block of a CAVP GCM response file. Bit lengths come
// from the bracketed group headers in force when the record was read.
type GCMRecord struct {
	Section string
	KeyBits int
	IVBits  int
	PTBits  int
	AADBits int
	TagBits int

	Count int
	Key   []byte
	IV    []byte
	PT    []byte
	AAD   []byte
	CT    []byte
	Tag   []byte
	Fail  bool

	hasPT, hasCT bool
}

type GCMMismatch struct {
	Count    int    `json:"count"`
	Section  string `json:"section,omitempty"`
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

type GCMValidationResult struct {
	Algorithm string        `json:"algorithm"`
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Failures  []GCMMismatch `json:"failures,omitempty"`
}

func ParseGCMVectorFile(r io.Reader) ([]GCMRecord, error) {
	var recs []GCMRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*maxGenBytes)

	var group GCMRecord
	var cur GCMRecord
	started := false
	lineNo := 0

	flush := func() {
		if started {
			recs = append(recs, cur)
		}
		cur = GCMRecord{
			Section: group.Section,
			KeyBits: group.KeyBits,
			IVBits:  group.IVBits,
			PTBits:  group.PTBits,
			AADBits: group.AADBits,
			TagBits: group.TagBits,
		}
		started = false
	}

	hexField := func(name, v string) ([]byte, error) {
		b, err := util.DecodeHex(name, v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		return b, nil
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			inner := strings.TrimSpace(strings.Trim(line, "[]"))
			k, v, ok := strings.Cut(inner, "=")
			if !ok {
				group.Section = strings.ToUpper(inner)
				cur.Section = group.Section
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("line %d: bad header %q", lineNo, line)
			}
			switch strings.ToUpper(strings.TrimSpace(k)) {
			case "KEYLEN":
				group.KeyBits = n
			case "IVLEN":
				group.IVBits = n
			case "PTLEN":
				group.PTBits = n
			case "AADLEN":
				group.AADBits = n
			case "TAGLEN":
				group.TagBits = n
			}
			flush()
			continue
		}
		if strings.EqualFold(line, "FAIL") {
			cur.Fail = true
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		var err error
		switch k {
		case "COUNT":
			flush()
			if cur.Count, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("line %d: bad Count %q", lineNo, v)
			}
			started = true
		case "KEY":
			cur.Key, err = hexField("Key", v)
		case "IV":
			cur.IV, err = hexField("IV", v)
		case "PT", "PLAINTEXT":
			cur.PT, err = hexField("PT", v)
			cur.hasPT = true
		case "AAD":
			cur.AAD, err = hexField("AAD", v)
		case "CT", "CIPHERTEXT":
			cur.CT, err = hexField("CT", v)
			cur.hasCT = true
		case "TAG":
			cur.Tag, err = hexField("Tag", v)
		}
		if err != nil {
			return nil, err
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r GCMRecord) supported() bool {
	ivBits, tagBits := r.IVBits, r.TagBits
	if ivBits == 0 {
		ivBits = len(r.IV) * 8
	}
	if tagBits == 0 {
		tagBits = len(r.Tag) * 8
	}
	return ivBits == gcm.IVSize*8 && tagBits == gcm.TagSize*8 &&
		len(r.IV) == gcm.IVSize && len(r.Tag) == gcm.TagSize
}

func ValidateGCM(recs []GCMRecord) (GCMValidationResult, error) {
	return ValidateGCMWith(AlgAES, recs)
}

// ValidateGCMWith recomputes every record under alg. Records with an IV other
// than 96 bits, a tag other than 128 bits, or no expected output are skipped.
func ValidateGCMWith(alg string, recs []GCMRecord) (GCMValidationResult, error) {
	alg, err := normalizeAlgorithm(alg)
	if err != nil {
		return GCMValidationResult{}, err
	}
	res := GCMValidationResult{Algorithm: alg, Total: len(recs)}
	mismatch := func(r GCMRecord, field string, want, got []byte) {
		res.Failed++
		res.Failures = append(res.Failures, GCMMismatch{
			Count:    r.Count,
			Section:  r.Section,
			Field:    field,
			Expected: util.EncodeHex(want),
			Got:      util.EncodeHex(got),
		})
	}

	for _, r := range recs {
		if !r.supported() || (!r.Fail && !(r.hasPT && r.hasCT)) {
			res.Skipped++
			continue
		}
		if r.KeyBits != 0 && r.KeyBits != len(r.Key)*8 {
			return res, fmt.Errorf("%w: record Count=%d: %d-bit key in a Keylen = %d group",
				ErrInvalidParams, r.Count, len(r.Key)*8, r.KeyBits)
		}
		g, err := NewGCM(alg, r.Key)
		if err != nil {
			return res, fmt.Errorf("%w: record Count=%d: %v", ErrInvalidParams, r.Count, err)
		}

		if r.Fail {
			pt, err := g.Decrypt(r.CT, r.IV, r.AAD, r.Tag)
			switch {
			case errors.Is(err, gcm.ErrAuthenticationFailure):
				res.Passed++
			case err != nil:
				return res, fmt.Errorf("record Count=%d: %w", r.Count, err)
			default:
				res.Failed++
				res.Failures = append(res.Failures, GCMMismatch{
					Count: r.Count, Section: r.Section, Field: "FAIL",
					Expected: "FAIL", Got: util.EncodeHex(pt),
				})
			}
			continue
		}

		ct, tag, err := g.Encrypt(r.PT, r.IV, r.AAD)
		if err != nil {
			return res, fmt.Errorf("record Count=%d: %w", r.Count, err)
		}
		switch {
		case !bytes.Equal(ct, r.CT):
			mismatch(r, "CT", r.CT, ct)
		case !bytes.Equal(tag, r.Tag):
			mismatch(r, "Tag", r.Tag, tag)
		default:
			pt, err := g.Decrypt(r.CT, r.IV, r.AAD, r.Tag)
			if err != nil || !bytes.Equal(pt, r.PT) {
				mismatch(r, "PT", r.PT, pt)
				continue
			}
			res.Passed++
		}
	}
	return res, nil
}
