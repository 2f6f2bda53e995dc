// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package guid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// parseStruct reads {0xAAAAAAAA,0xBBBB,0xCCCC,{0xDD,0xDD,0xDD,0xDD,0xDD,0xDD,0xDD,0xDD}}.
// Each field may carry fewer digits than its width.
func parseStruct(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}}") {
		return id, ErrInvalidFormat
	}
	inner := s[1 : len(s)-1]

	open := strings.Index(inner, ",{")
	if open < 0 {
		return id, ErrInvalidFormat
	}
	head := strings.Split(inner[:open], ",")
	tail := strings.Split(inner[open+2:len(inner)-1], ",")
	if len(head) != 3 || len(tail) != 8 {
		return id, ErrInvalidFormat
	}

	widths := []int{4, 2, 2}
	pos := 0
	for i, field := range head {
		v, err := parseHexField(field, widths[i])
		if err != nil {
			return id, err
		}
		for b := widths[i] - 1; b >= 0; b-- {
			id[pos+b] = byte(v)
			v >>= 8
		}
		pos += widths[i]
	}
	for _, field := range tail {
		v, err := parseHexField(field, 1)
		if err != nil {
			return id, err
		}
		id[pos] = byte(v)
		pos++
	}
	return id, nil
}

// parseHexField reads 0x followed by 1..2*size hex digits.
func parseHexField(field string, size int) (uint64, error) {
	if len(field) < 3 || (field[:2] != "0x" && field[:2] != "0X") {
		return 0, ErrInvalidFormat
	}
	digits := field[2:]
	if len(digits) > size*2 {
		return 0, ErrInvalidFormat
	}
	for i := 0; i < len(digits); i++ {
		if !isHex(digits[i]) {
			return 0, ErrInvalidFormat
		}
	}
	return strconv.ParseUint(digits, 16, size*8)
}

func formatStruct(id uuid.UUID) string {
	var b strings.Builder
	fmt.Fprintf(&b, "{0x%02x%02x%02x%02x,0x%02x%02x,0x%02x%02x,{",
		id[0], id[1], id[2], id[3], id[4], id[5], id[6], id[7])
	for i := 8; i < 16; i++ {
		if i > 8 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "0x%02x", id[i])
	}
	b.WriteString("}}")
	return b.String()
}
