// Package neuroml reads and writes NeuroML v2 documents.
//
// Bytes move through a driven.ArtifactStore, so the same serializer
// targets the working directory, memory or an S3 bucket.
package neuroml

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
	"github.com/custodia-labs/nmlcell/internal/logger"
)

// ContentType is stored with written artifacts.
const ContentType = "application/xml"

// Ensure Serializer implements the interface.
var _ driven.ModelSerializer = (*Serializer)(nil)

// Serializer implements driven.ModelSerializer.
type Serializer struct {
	store          driven.ArtifactStore
	validator      driven.ModelValidator
	schemaLocation string
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithSchemaLocation sets the XSD URL written in xsi:schemaLocation.
// An empty location omits the attribute.
func WithSchemaLocation(url string) Option {
	return func(s *Serializer) {
		s.schemaLocation = url
	}
}

// WithValidator replaces the default two-level validator.
func WithValidator(v driven.ModelValidator) Option {
	return func(s *Serializer) {
		s.validator = v
	}
}

// NewSerializer returns a serializer reading and writing through store.
func NewSerializer(store driven.ArtifactStore, opts ...Option) *Serializer {
	s := &Serializer{
		store:          store,
		validator:      NewValidator(),
		schemaLocation: DefaultSchemaLocation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse reads path from the store. Returns domain.ErrNotFound when it is
// absent and domain.ErrMalformed when it is not a NeuroML document.
func (s *Serializer) Parse(ctx context.Context, path string) (*domain.Document, error) {
	_, rc, err := s.store.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	logger.Debug("parsed %s: %d cell(s), %d ion channel(s), %d network(s)",
		path, len(doc.Cells), len(doc.IonChannels), len(doc.Networks))
	return doc, nil
}

// Write encodes doc and stores it at path. With validate set, a document
// failing validation is not written and the error wraps domain.ErrValidation.
// Metadata attached with driven.WithArtifactMetadata is stored alongside.
func (s *Serializer) Write(ctx context.Context, doc *domain.Document, path string, validate bool) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if validate {
		if err := s.validator.Validate(doc); err != nil {
			return err
		}
		logger.Debug("%s is valid NeuroML", doc.ID)
	}
	data, err := Encode(doc, s.schemaLocation)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	info, err := s.store.Put(ctx, path, bytes.NewReader(data), driven.PutOptions{
		ContentType: ContentType,
		Metadata:    driven.ArtifactMetadata(ctx),
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Debug("wrote %s (%d bytes)", info.Key, info.Size)
	return nil
}

// Decode parses a NeuroML document.
func Decode(data []byte) (*domain.Document, error) {
	var x xmlDocument
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformed, err)
	}
	return toDomain(&x)
}

// Encode renders doc as indented NeuroML with an XML header.
func Encode(doc *domain.Document, schemaLocation string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(fromDomain(doc, schemaLocation)); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
