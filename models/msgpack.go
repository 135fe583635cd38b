package models

import (
	"encoding/json"
	"strings"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// Encoding selects how a SignUpData body travels to the account service.
//
// JSON is the default and what the stock account service expects. MsgPack is
// the compact alternative for services that accept application/msgpack; the
// struct tags on SignUpData keep the key names identical in both encodings.
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingMsgPack Encoding = "msgpack"
)

// ParseEncoding converts a config value into an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case EncodingJSON, "":
		return EncodingJSON, nil
	case EncodingMsgPack:
		return EncodingMsgPack, nil
	}
	return "", serr.New("unknown account encoding " + s + ", expected json or msgpack")
}

// ContentType returns the HTTP content type matching the encoding
func (e Encoding) ContentType() string {
	if e == EncodingMsgPack {
		return "application/msgpack"
	}
	return "application/json"
}

// EncodeSignUp serializes a request body.
//
// Encoding pipeline: SignUpData -> json or msgpack bytes
func EncodeSignUp(enc Encoding, data SignUpData) ([]byte, error) {
	if enc == EncodingMsgPack {
		b, err := msgpack.Marshal(data)
		if err != nil {
			return nil, serr.Wrap(err, "failed to msgpack encode sign-up data")
		}
		return b, nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return nil, serr.Wrap(err, "failed to json encode sign-up data")
	}
	return b, nil
}

// DecodeSignUp is the inverse of EncodeSignUp. Test doubles of the account
// service use it to read what the client sent.
func DecodeSignUp(enc Encoding, body []byte) (SignUpData, error) {
	var data SignUpData
	if enc == EncodingMsgPack {
		if err := msgpack.Unmarshal(body, &data); err != nil {
			return SignUpData{}, serr.Wrap(err, "failed to msgpack decode sign-up data")
		}
		return data, nil
	}

	if err := json.Unmarshal(body, &data); err != nil {
		return SignUpData{}, serr.Wrap(err, "failed to json decode sign-up data")
	}
	return data, nil
}
