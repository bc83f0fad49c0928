package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	"sahachari/internal/vision"
)

const visionName = "google-vision"

// Identifier calls the Cloud Vision v1 images:annotate API with label
// detection and object localization.
type Identifier struct {
	svc *visionapi.Service
}

// NewIdentifier returns an Identifier; an empty apiKey leaves it unconfigured.
func NewIdentifier(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Identifier, error) {
	if apiKey == "" {
		return &Identifier{}, nil
	}
	svc, err := visionapi.NewService(ctx, clientOptions(apiKey, opts)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	return &Identifier{svc: svc}, nil
}

func (i *Identifier) Name() string     { return visionName }
func (i *Identifier) Configured() bool { return i.svc != nil }

// Identify returns food-related labels and objects found in img.
func (i *Identifier) Identify(ctx context.Context, img *vision.Image) ([]vision.Ingredient, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{{
			Image: &visionapi.Image{Content: base64.StdEncoding.EncodeToString(img.JPEG)},
			Features: []*visionapi.Feature{
				{Type: "LABEL_DETECTION", MaxResults: 20},
				{Type: "OBJECT_LOCALIZATION", MaxResults: 20},
			},
		}},
	}
	resp, err := i.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(visionName, err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}

	annotations := resp.Responses[0]
	if annotations.Error != nil {
		return nil, wrapErr(visionName, errors.New(annotations.Error.Message))
	}

	var found []vision.Ingredient
	for _, label := range annotations.LabelAnnotations {
		if vision.IsFoodRelated(label.Description) {
			found = append(found, vision.Ingredient{Name: label.Description, Confidence: label.Score, Source: "label"})
		}
	}
	for _, obj := range annotations.LocalizedObjectAnnotations {
		if vision.IsFoodRelated(obj.Name) {
			found = append(found, vision.Ingredient{Name: obj.Name, Confidence: obj.Score, Source: "object"})
		}
	}
	return found, nil
}
