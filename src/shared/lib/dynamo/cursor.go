package dynamolib

import (
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/domains"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

var MalformedCursorMark = domains.New("malformed_cursor")

// EncodeCursor turns a paging key into an opaque string that can be handed to
// clients. An empty paging key means there are no more pages and encodes to "".
func EncodeCursor(key dynamo.PagingKey) (string, error) {
	if len(key) == 0 {
		return "", nil
	}

	plainMap := map[string]any{}
	if err := dynamodbattribute.UnmarshalMap(key, &plainMap); err != nil {
		return "", errors.Wrap(err, "Failed to unmarshal paging key")
	}

	jsonBytes, err := json.Marshal(plainMap)
	if err != nil {
		return "", errors.Wrap(err, "Failed to marshal paging key")
	}

	return base64.RawURLEncoding.EncodeToString(jsonBytes), nil
}

// DecodeCursor reverses EncodeCursor. The decoded key must hold exactly
// keyNames, each as a string, so a forged cursor can't steer the query.
func DecodeCursor(cursor string, keyNames ...string) (dynamo.PagingKey, error) {
	if cursor == "" {
		return nil, nil
	}

	jsonBytes, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, mark.Wrap(err, MalformedCursorMark, "Cursor is not valid base64")
	}

	plainMap := map[string]any{}
	if err := json.Unmarshal(jsonBytes, &plainMap); err != nil {
		return nil, mark.Wrap(err, MalformedCursorMark, "Cursor does not hold a JSON object")
	}

	if len(plainMap) == 0 {
		err := errors.New("Cursor is an empty object")
		return nil, mark.Wrap(err, MalformedCursorMark, "Cursor does not hold a paging key")
	}

	if len(plainMap) != len(keyNames) {
		err := errors.Newf("Cursor has %d keys, expected %v", len(plainMap), keyNames)
		return nil, mark.Wrap(err, MalformedCursorMark, "Cursor does not hold a paging key")
	}

	for _, keyName := range keyNames {
		value, ok := plainMap[keyName].(string)
		if !ok || value == "" {
			err := errors.Newf("Cursor key %s is missing or not a string", keyName)
			return nil, mark.Wrap(err, MalformedCursorMark, "Cursor does not hold a paging key")
		}
	}

	key, err := dynamodbattribute.MarshalMap(plainMap)
	if err != nil {
		return nil, mark.Wrap(err, MalformedCursorMark, "Cursor could not be converted to a paging key")
	}

	return key, nil
}
