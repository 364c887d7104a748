package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dsoprea/go-exif/v3"

	"heic2jpg/contracts"
)

var ErrNoExif = errors.New("no EXIF data")

// ReadImageMetadata pulls camera and capture facts out of the EXIF block
// embedded in an image file. HEIC keeps EXIF as an item inside the
// container, so the block is located by scanning rather than by box parsing.
func ReadImageMetadata(filePath string) (contracts.ImageMetadata, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return contracts.ImageMetadata{}, err
	}
	return ParseExifMetadata(data)
}

func ParseExifMetadata(data []byte) (meta contracts.ImageMetadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed EXIF: %v", r)
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return meta, ErrNoExif
		}
		return meta, fmt.Errorf("EXIF not found: %w", err)
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return meta, fmt.Errorf("reading EXIF tags: %w", err)
	}

	var dateTime, dateTimeOriginal string
	for _, tag := range tags {
		switch tag.TagName {
		case "Make":
			meta.Make = tagString(tag.Value)
		case "Model":
			meta.Model = tagString(tag.Value)
		case "DateTime":
			dateTime = tagString(tag.Value)
		case "DateTimeOriginal":
			dateTimeOriginal = tagString(tag.Value)
		case "Orientation":
			if v, ok := tag.Value.([]uint16); ok && len(v) > 0 {
				meta.Orientation = int(v[0])
			}
		}
	}

	meta.DateTime = dateTimeOriginal
	if meta.DateTime == "" {
		meta.DateTime = dateTime
	}
	return meta, nil
}

func tagString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimRight(strings.TrimSpace(s), "\x00")
}

// OrientationLabel describes an EXIF orientation value.
func OrientationLabel(o int) string {
	switch o {
	case 1:
		return "normal"
	case 2:
		return "mirrored"
	case 3:
		return "rotated 180°"
	case 4:
		return "mirrored, rotated 180°"
	case 5:
		return "mirrored, rotated 90° CW"
	case 6:
		return "rotated 90° CW"
	case 7:
		return "mirrored, rotated 90° CCW"
	case 8:
		return "rotated 90° CCW"
	}
	return "unknown"
}
