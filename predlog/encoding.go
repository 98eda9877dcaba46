package predlog

import (
	"encoding/binary"
	"strings"
)

const (
	// PredictionPrefix marks keys holding the asserted labels of one comment
	PredictionPrefix byte = 0x00
	// LabelCountPrefix marks keys holding per-label assertion counters
	LabelCountPrefix byte = 0x01

	labelSeparator = ","
)

func encodeKey(prefix byte, name string) []byte {
	key := make([]byte, 1+len(name))
	key[0] = prefix
	copy(key[1:], []byte(name))
	return key
}

func encodeLabels(labels []string) []byte {
	return []byte(strings.Join(labels, labelSeparator))
}

func decodeLabels(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), labelSeparator)
}

func encodeCount(value uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, value)
	return buf
}

func decodeCount(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data)
}
