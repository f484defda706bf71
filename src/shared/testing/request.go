package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/labstack/echo/v4"
	"github.com/onsi/gomega"
)

type RequestModifier func(r *http.Request)

type RequestModifiers []RequestModifier

func (r *RequestModifiers) Add(mods ...RequestModifier) {
	*r = append(*r, mods...)
}

func WithAuthHeader(header string) RequestModifier {
	return func(request *http.Request) {
		request.Header.Set(echo.HeaderAuthorization, header)
	}
}

func WithUserCred(user User) RequestModifier {
	return WithAuthHeader(AuthHeaderFor(user))
}

// File is a single multipart form file
type File struct {
	FieldName   string
	FileName    string
	ContentType string
	Contents    []byte
}

type RequestFactory struct {
	Method  string
	Target  string
	JSONObj interface{}
	File    *File
	Mods    RequestModifiers
}

func (r RequestFactory) body() (io.Reader, string) {
	switch {
	case r.File != nil:
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			`form-data; name="`+r.File.FieldName+`"; filename="`+r.File.FileName+`"`)
		header.Set(echo.HeaderContentType, r.File.ContentType)

		part, err := writer.CreatePart(header)
		gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())

		_, err = part.Write(r.File.Contents)
		gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())
		gomega.ExpectWithOffset(2, writer.Close()).To(gomega.Succeed())

		return buf, writer.FormDataContentType()

	case r.JSONObj != nil:
		buf := &bytes.Buffer{}
		err := json.NewEncoder(buf).Encode(r.JSONObj)
		gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())

		return buf, echo.MIMEApplicationJSON

	default:
		return nil, ""
	}
}

func (r RequestFactory) make(reqMaker func(string, string, io.Reader) *http.Request) *http.Request {
	body, contentType := r.body()
	request := reqMaker(r.Method, r.Target, body)

	if contentType != "" {
		request.Header.Set(echo.HeaderContentType, contentType)
	}

	for _, mod := range r.Mods {
		mod(request)
	}

	return request
}

func (r RequestFactory) MakeFake() *http.Request {
	return r.make(httptest.NewRequest)
}

func (r RequestFactory) Do() (*http.Response, error) {
	makeRealRequest := func(method string, target string, body io.Reader) *http.Request {
		return ExpectSuccess(http.NewRequest(method, target, body))
	}

	req := r.make(makeRealRequest)
	return http.DefaultClient.Do(req)
}

// Serve runs the request against handler and returns the recorded response
func (r RequestFactory) Serve(handler http.Handler) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, r.MakeFake())
	return recorder
}
