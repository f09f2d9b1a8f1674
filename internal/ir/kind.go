package ir

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when decoding an enum name that does not exist.
var ErrUnknownKind = errors.New("unknown kind")

// Kind identifies the variant of a Node.
type Kind int

const (
	KindDocument Kind = iota
	KindImport
	KindClass
	KindMethod
	KindField

	KindToken
	KindHTMLContent
	KindExpression
	KindCodeBlock
	KindTemplate

	KindHTMLAttributeValue
	KindExpressionAttributeValue
	KindCodeAttributeValue

	KindTagHelper
	KindTagHelperBody
	KindTagHelperCreate
	KindTagHelperExecute
	KindTagHelperHTMLAttribute
	KindTagHelperProperty
	KindTagHelperRuntime

	// KindCount is the number of node kinds; dispatch tables are sized by it.
	KindCount
)

var kindNames = [KindCount]string{
	KindDocument:                 "Document",
	KindImport:                   "Import",
	KindClass:                    "Class",
	KindMethod:                   "Method",
	KindField:                    "Field",
	KindToken:                    "Token",
	KindHTMLContent:              "HTMLContent",
	KindExpression:               "Expression",
	KindCodeBlock:                "CodeBlock",
	KindTemplate:                 "Template",
	KindHTMLAttributeValue:       "HTMLAttributeValue",
	KindExpressionAttributeValue: "ExpressionAttributeValue",
	KindCodeAttributeValue:       "CodeAttributeValue",
	KindTagHelper:                "TagHelper",
	KindTagHelperBody:            "TagHelperBody",
	KindTagHelperCreate:          "TagHelperCreate",
	KindTagHelperExecute:         "TagHelperExecute",
	KindTagHelperHTMLAttribute:   "TagHelperHTMLAttribute",
	KindTagHelperProperty:        "TagHelperProperty",
	KindTagHelperRuntime:         "TagHelperRuntime",
}

// String returns the kind name used in IR documents.
func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= KindCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("%w: node kind %q", ErrUnknownKind, text)
}

// TokenKind tells whether a token holds literal markup or host code.
type TokenKind int

const (
	TokenHTML TokenKind = iota
	TokenCode
)

// String returns "html" or "code".
func (k TokenKind) String() string {
	if k == TokenCode {
		return "code"
	}
	return "html"
}

// MarshalText implements encoding.TextMarshaler.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TokenKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "html":
		*k = TokenHTML
	case "code":
		*k = TokenCode
	default:
		return fmt.Errorf("%w: token kind %q", ErrUnknownKind, text)
	}
	return nil
}

// TagMode describes how a tag occurrence was written.
type TagMode int

const (
	TagModeStartTagAndEndTag TagMode = iota
	TagModeSelfClosing
	TagModeStartTagOnly
)

var tagModeNames = [...]string{
	TagModeStartTagAndEndTag: "StartTagAndEndTag",
	TagModeSelfClosing:       "SelfClosing",
	TagModeStartTagOnly:      "StartTagOnly",
}

// String returns the runtime constant suffix, e.g. "SelfClosing".
func (m TagMode) String() string {
	if m < 0 || int(m) >= len(tagModeNames) {
		return fmt.Sprintf("TagMode(%d)", int(m))
	}
	return tagModeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m TagMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TagMode) UnmarshalText(text []byte) error {
	for i, name := range tagModeNames {
		if name == string(text) {
			*m = TagMode(i)
			return nil
		}
	}
	return fmt.Errorf("%w: tag mode %q", ErrUnknownKind, text)
}

// AttributeValueStyle classifies how an attribute value was written.
type AttributeValueStyle int

const (
	ValueStylePlain AttributeValueStyle = iota
	ValueStyleMinimized
	ValueStyleExpression
)

var valueStyleNames = [...]string{
	ValueStylePlain:      "Plain",
	ValueStyleMinimized:  "Minimized",
	ValueStyleExpression: "Expression",
}

// String returns the runtime constant suffix, e.g. "Minimized".
func (s AttributeValueStyle) String() string {
	if s < 0 || int(s) >= len(valueStyleNames) {
		return fmt.Sprintf("AttributeValueStyle(%d)", int(s))
	}
	return valueStyleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s AttributeValueStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AttributeValueStyle) UnmarshalText(text []byte) error {
	for i, name := range valueStyleNames {
		if name == string(text) {
			*s = AttributeValueStyle(i)
			return nil
		}
	}
	return fmt.Errorf("%w: attribute value style %q", ErrUnknownKind, text)
}
