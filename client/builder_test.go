package client

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitHostName(t *testing.T) {
	testCases := map[string]struct {
		in  string
		exp []string
	}{
		"hostOnly":     {in: "example.com", exp: []string{"example.com"}},
		"hostAndPort":  {in: "localhost:8080", exp: []string{"localhost", "8080"}},
		"emptyPort":    {in: "localhost:", exp: []string{"localhost", ""}},
		"emptyHost":    {in: ":8080", exp: []string{"", "8080"}},
		"empty":        {in: "", exp: []string{""}},
		"firstColon":   {in: "a:b:c", exp: []string{"a", "b:c"}},
		"invalidPort":  {in: "host:abc", exp: []string{"host", "abc"}},
		"numericHost":  {in: "0", exp: []string{"0"}},
		"onlyAColon":   {in: ":", exp: []string{"", ""}},
		"spacedTarget": {in: "exa mple.com", exp: []string{"exa mple.com"}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.exp, SplitHostName(tc.in)); diff != "" {
				t.Errorf("unexpected split (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitHostName_Properties(t *testing.T) {
	const alphabet = "abc:.1 "

	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		b := make([]byte, r.IntN(12))
		for i := range b {
			b[i] = alphabet[r.IntN(len(alphabet))]
		}
		s := string(b)

		parts := SplitHostName(s)
		if !strings.Contains(s, ":") {
			if len(parts) != 1 || parts[0] != s {
				t.Fatalf("%q: expected the input unchanged, got %q", s, parts)
			}
			continue
		}

		if len(parts) != 2 {
			t.Fatalf("%q: expected 2 parts, got %q", s, parts)
		}
		if strings.Contains(parts[0], ":") {
			t.Fatalf("%q: host part must not contain a colon, got %q", s, parts[0])
		}
		if parts[0]+":"+parts[1] != s {
			t.Fatalf("%q: parts do not rejoin to the input, got %q", s, parts)
		}
	}
}

func TestBuildURL(t *testing.T) {
	ep := NewEndpoint("/files", QueryParam{Name: "b", Value: "2"}, QueryParam{Name: "a", Value: "1"})

	testCases := map[string]struct {
		scheme    Scheme
		host      string
		ep        Endpoint
		withQuery bool
		exp       string
		expErr    bool
	}{
		"withQuery":       {scheme: HTTPS, host: "example.com", ep: ep, withQuery: true, exp: "https://example.com/files?b=2&a=1"},
		"withoutQuery":    {scheme: HTTPS, host: "example.com", ep: ep, exp: "https://example.com/files"},
		"port":            {scheme: HTTP, host: "localhost:8080", ep: ep, exp: "http://localhost:8080/files"},
		"portZero":        {scheme: HTTP, host: "localhost:0", ep: ep, exp: "http://localhost:0/files"},
		"portMax":         {scheme: HTTP, host: "localhost:65535", ep: ep, exp: "http://localhost:65535/files"},
		"portLeadingZero": {scheme: HTTP, host: "localhost:080", ep: ep, exp: "http://localhost:80/files"},
		"ipv4":            {scheme: HTTP, host: "127.0.0.1:9000", ep: NewEndpoint("/"), exp: "http://127.0.0.1:9000/"},
		"portTooLarge":    {scheme: HTTP, host: "localhost:65536", ep: ep, expErr: true},
		"portAlpha":       {scheme: HTTP, host: "localhost:http", ep: ep, expErr: true},
		"noHost":          {scheme: HTTP, host: "", ep: ep, expErr: true},
		"relativePath":    {scheme: HTTP, host: "example.com", ep: NewEndpoint("files"), expErr: true},
		"hostWithSpace":   {scheme: HTTP, host: "exa mple.com", ep: ep, expErr: true},
		"spacedQuery":     {scheme: HTTPS, host: "example.com", ep: NewEndpoint("/s", QueryParam{Name: "a b", Value: "c d"}), withQuery: true, exp: "https://example.com/s?a%20b=c%20d"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			u, err := buildURL(tc.scheme, tc.host, tc.ep, tc.withQuery)

			if tc.expErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("expected ErrInvalidURL, got: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if u.String() != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, u.String())
			}
		})
	}
}

func TestEncodeQuery(t *testing.T) {
	testCases := map[string]struct {
		params []QueryParam
		exp    string
	}{
		"none":         {exp: ""},
		"plain":        {params: []QueryParam{{Name: "a", Value: "1"}}, exp: "a=1"},
		"spaceInValue": {params: []QueryParam{{Name: "q", Value: "a b"}}, exp: "q=a%20b"},
		"spaceInName":  {params: []QueryParam{{Name: "sort by", Value: "first name"}}, exp: "sort%20by=first%20name"},
		"literalPlus":  {params: []QueryParam{{Name: "math", Value: "1+1"}}, exp: "math=1%2B1"},
		"reserved":     {params: []QueryParam{{Name: "tag", Value: "x&y=z"}}, exp: "tag=x%26y%3Dz"},
		"unicode":      {params: []QueryParam{{Name: "tag", Value: "ü"}}, exp: "tag=%C3%BC"},
		"emptyValue":   {params: []QueryParam{{Name: "empty"}}, exp: "empty="},
		"orderKept": {
			params: []QueryParam{{Name: "z", Value: "1"}, {Name: "a", Value: "2"}, {Name: "z", Value: "3"}},
			exp:    "z=1&a=2&z=3",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := encodeQuery(tc.params); got != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestUploadName(t *testing.T) {
	testCases := []struct {
		name     string
		fileType FileType
		exp      string
	}{
		{name: "photo", fileType: JPG, exp: "photo.jpg"},
		{name: "photo.jpg", fileType: JPG, exp: "photo.jpg"},
		{name: "photo.JPG", fileType: JPG, exp: "photo.JPG"},
		{name: "photo.jpg", fileType: PNG, exp: "photo.jpg.png"},
		{name: "clip", fileType: MP4, exp: "clip.mp4"},
		{name: "blob", fileType: ANY, exp: "blob"},
		{name: "", fileType: JSON, exp: ".json"},
	}

	for _, tc := range testCases {
		t.Run(tc.exp, func(t *testing.T) {
			if got := uploadName(tc.name, tc.fileType); got != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestEndpoint_Immutable(t *testing.T) {
	params := []QueryParam{{Name: "a", Value: "1"}}
	ep := NewEndpoint("/items", params...)

	params[0].Value = "changed"
	ep.Query()[0].Value = "changed"

	if diff := cmp.Diff([]QueryParam{{Name: "a", Value: "1"}}, ep.Query()); diff != "" {
		t.Errorf("endpoint must not share its query (-want +got):\n%s", diff)
	}

	with := ep.WithQuery(QueryParam{Name: "b", Value: "2"})
	exp := []QueryParam{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(exp, with.Query()); diff != "" {
		t.Errorf("WithQuery must append in order (-want +got):\n%s", diff)
	}
	if len(ep.Query()) != 1 {
		t.Errorf("WithQuery must not modify the receiver, got %v", ep.Query())
	}
	if with.Path() != "/items" {
		t.Errorf("WithQuery must keep the path, got %q", with.Path())
	}
}

func TestMethod(t *testing.T) {
	testCases := []struct {
		method  Method
		exp     string
		attachs bool
	}{
		{GET, "GET", false},
		{HEAD, "HEAD", false},
		{POST, "POST", true},
		{PUT, "PUT", true},
		{DELETE, "DELETE", false},
		{CONNECT, "CONNECT", false},
		{OPTIONS, "OPTIONS", false},
		{TRACE, "TRACE", false},
		{PATCH, "PATCH", false},
	}

	for _, tc := range testCases {
		t.Run(tc.exp, func(t *testing.T) {
			if tc.method.String() != tc.exp {
				t.Errorf("exp %q, got %q", tc.exp, tc.method.String())
			}
			if tc.method.AttachesBody() != tc.attachs {
				t.Errorf("exp AttachesBody %v, got %v", tc.attachs, tc.method.AttachesBody())
			}
		})
	}

	for _, m := range []Method{Method(-1), Method(len(methods)), Method(42)} {
		if exp := "Method(" + strconv.Itoa(int(m)) + ")"; m.String() != exp {
			t.Errorf("exp %q, got %q", exp, m.String())
		}
	}

	if HTTP.String() != "http" || HTTPS.String() != "https" {
		t.Errorf("unexpected schemes %q %q", HTTP, HTTPS)
	}
}
