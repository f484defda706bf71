package gateway_test

import (
	"go/constant"
	"go/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/tools/go/packages"

	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/shared/testing"
)

// declaredErrorCodes type checks the server packages and collects every
// constant of type api.ErrorCode
func declaredErrorCodes() []api.ErrorCode {
	loaded := testing.ExpectSuccess(packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo,
	}, "github.com/karasai/karasai-be/src/server/..."))

	seen := map[api.ErrorCode]bool{}
	codes := []api.ErrorCode{}
	for _, pkg := range loaded {
		Expect(pkg.Errors).To(BeEmpty(), "package %s failed to load", pkg.PkgPath)

		for _, def := range pkg.TypesInfo.Defs {
			code, ok := errorCodeConst(def)
			if ok && !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}

	return codes
}

func errorCodeConst(def types.Object) (api.ErrorCode, bool) {
	constDef, ok := def.(*types.Const)
	if !ok {
		return "", false
	}

	named, ok := constDef.Type().(*types.Named)
	if !ok || named.Obj().Name() != "ErrorCode" || named.Obj().Pkg().Name() != "api" {
		return "", false
	}

	Expect(constDef.Val().Kind()).To(Equal(constant.String))
	value := constant.StringVal(constDef.Val())
	Expect(value).NotTo(BeEmpty(), "%s is declared with an empty code", constDef.Name())

	return api.ErrorCode(value), true
}

var _ = Describe("Declared error codes", Ordered, func() {
	var declared []api.ErrorCode

	BeforeAll(func() {
		declared = declaredErrorCodes()
	})

	It("finds the codes of every domain", func() {
		Expect(declared).To(ContainElements(
			api.ErrorCode("wrong_owner"),
			api.ErrorCode("listing_not_found"),
			api.ErrorCode("invalid_certificate"),
			api.ErrorCode("bad_contact_data"),
		))
	})

	It("maps every declared code to a status", func() {
		for _, code := range declared {
			code := code
			Expect(func() { gateway.StatusCode(code) }).NotTo(Panic(), "code %s has no status", code)
		}
	})

	It("lists every declared code in the status table test", func() {
		Expect(allErrorCodes).To(ContainElements(declared))
	})
})
