package artifact

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

var ebmlMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// Sniff classifies content by its schema. The name is consulted only for
// video extensions when the bytes carry no recognisable container header.
func Sniff(name string, data []byte) (Kind, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if len(data) >= 12 && string(data[4:8]) == "ftyp" {
		return KindVideo, nil
	}
	if bytes.HasPrefix(data, ebmlMagic) {
		return KindVideo, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		if IsVideoName(name) {
			return KindVideo, nil
		}
		return KindUnknown, ErrEmpty
	}

	if trimmed[0] == '{' {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return KindUnknown, fmt.Errorf("%w: malformed json: %v", ErrUnsupported, err)
		}
		if _, ok := keys["vector_field"]; ok {
			return KindVectorField, nil
		}
		_, hasTeacher := keys[SeriesTeacher]
		_, hasStudent := keys[SeriesStudent]
		if hasTeacher || hasStudent {
			return KindEmbedding, nil
		}
		return KindUnknown, fmt.Errorf("%w: json object has no vector_field, teacher or student key", ErrUnsupported)
	}

	if hasStepHeader(trimmed) {
		return KindCurves, nil
	}
	if IsVideoName(name) {
		return KindVideo, nil
	}
	return KindUnknown, ErrUnsupported
}

func hasStepHeader(data []byte) bool {
	line, err := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	header, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return false
	}
	for _, h := range header {
		if strings.TrimSpace(h) == StepColumn {
			return true
		}
	}
	return false
}
