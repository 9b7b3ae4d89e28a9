package client

import (
	"github.com/gabriel-vasile/mimetype"
)

// FileType selects the Content-Type and file extension of an upload.
type FileType int

const (
	ANY FileType = iota
	JPG
	JPEG
	PNG
	HEIC
	MP3
	MP4
	WEBA
	WEBM
	WEBP
	JSON
)

const octetStream = "application/octet-stream"

type fileTypeInfo struct {
	name        string
	ext         string
	contentType string
}

var fileTypes = map[FileType]fileTypeInfo{
	JPG:  {"JPG", ".jpg", "image/jpeg"},
	JPEG: {"JPEG", ".jpeg", "image/jpeg"},
	PNG:  {"PNG", ".png", "image/png"},
	HEIC: {"HEIC", ".heic", "image/heic"},
	MP3:  {"MP3", ".mp3", "audio/mpeg"},
	MP4:  {"MP4", ".mp4", "video/mp4"},
	WEBA: {"WEBA", ".weba", "audio/webm"},
	WEBM: {"WEBM", ".webm", "video/webm"},
	WEBP: {"WEBP", ".webp", "image/webp"},
	JSON: {"JSON", ".json", "application/json"},
}

// detectOrder is the lookup order of DetectFileType. JPEG precedes JPG
// so a sniffed image/jpeg resolves to JPEG.
var detectOrder = []FileType{JPEG, JPG, PNG, HEIC, MP3, MP4, WEBM, WEBA, WEBP, JSON}

func (f FileType) String() string {
	if info, ok := fileTypes[f]; ok {
		return info.name
	}
	return "ANY"
}

// ContentType returns the MIME type sent for f.
// ANY and unknown values map to application/octet-stream.
func (f FileType) ContentType() string {
	if info, ok := fileTypes[f]; ok {
		return info.contentType
	}
	return octetStream
}

// Extension returns the file extension of f, including the dot.
// ANY has no extension.
func (f FileType) Extension() string {
	return fileTypes[f].ext
}

// DetectFileType sniffs data and returns the matching FileType,
// or ANY when the content is not one of the known types.
//
// [Client.Upload] never sniffs: an ANY upload is sent as
// application/octet-stream. Call DetectFileType first to pick a type.
func DetectFileType(data []byte) FileType {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		for _, ft := range detectOrder {
			if m.Is(ft.ContentType()) {
				return ft
			}
		}
	}
	return ANY
}
