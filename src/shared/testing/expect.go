package testing

import (
	"github.com/onsi/gomega"
)

func ExpectSuccess[T any](t T, err error) T {
	gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())
	return t
}

func ExpectType[T any](obj any) T {
	t, ok := obj.(T)
	gomega.ExpectWithOffset(1, ok).To(gomega.BeTrue())
	return t
}
