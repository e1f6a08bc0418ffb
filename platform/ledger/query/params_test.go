/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query_test

import (
	"testing"

	"github.com/hyperledger-labs/ledger-client-sdk/pkg/utils/errors"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/model"
	"github.com/hyperledger-labs/ledger-client-sdk/platform/ledger/query"
	. "github.com/onsi/gomega"
)

func TestDefaults(t *testing.T) {
	RegisterTestingT(t)

	p := query.NewParams()
	Expect(p.PageSize).To(Equal(10))
	Expect(p.Order).To(Equal(query.Desc))
	Expect(p.ID).To(BeEmpty())
	_, ok := p.TypesCSV()
	Expect(ok).To(BeFalse())
}

func TestPageSizeClamp(t *testing.T) {
	RegisterTestingT(t)

	for in, expected := range map[int]int{
		-1: 10, 0: 10, 9: 10, 10: 10, 11: 11, 50: 50, 100: 100, 101: 10, 1000: 10,
	} {
		Expect(query.NewParams().WithPageSize(in).PageSize).To(Equal(expected), "page size %d", in)
		Expect(query.Params{PageSize: in}.Normalized().PageSize).To(Equal(expected), "page size %d", in)
	}
}

func TestWithIsCopyOnWrite(t *testing.T) {
	RegisterTestingT(t)

	base := query.NewParams().WithTypes(model.Transfer)
	changed := base.WithID("abc").WithOrder(query.Asc).WithPageSize(50).WithTypes(model.HashLock)

	Expect(base.ID).To(BeEmpty())
	Expect(base.Order).To(Equal(query.Desc))
	Expect(base.PageSize).To(Equal(10))
	Expect(base.Types).To(Equal(query.Types{model.Transfer}))
	Expect(changed.ID).To(Equal("abc"))
	Expect(changed.Order).To(Equal(query.Asc))
	Expect(changed.PageSize).To(Equal(50))

	normalized := base.Normalized()
	normalized.Types[0] = model.SecretLock
	Expect(base.Types[0]).To(Equal(model.Transfer))
}

func TestWithOrderDefaultsToDesc(t *testing.T) {
	RegisterTestingT(t)

	Expect(query.NewParams().WithOrder(query.Asc).WithOrder("").Order).To(Equal(query.Desc))
	Expect(query.Params{}.Normalized().Order).To(Equal(query.Desc))
}

func TestTypesCSV(t *testing.T) {
	RegisterTestingT(t)

	csv, ok := query.NewParams().WithTypes(model.Transfer, model.HashLock, model.Transfer).TypesCSV()
	Expect(ok).To(BeTrue())
	Expect(csv).To(Equal("16724,16712"))

	_, ok = query.NewParams().WithTypes().TypesCSV()
	Expect(ok).To(BeFalse())
	_, ok = query.NewParams().WithTypes(model.Transfer).WithTypes().TypesCSV()
	Expect(ok).To(BeFalse())
}

func TestValues(t *testing.T) {
	RegisterTestingT(t)

	v, err := query.NewParams().Values()
	Expect(err).ToNot(HaveOccurred())
	Expect(v.Encode()).To(Equal("ordering=-id&pageSize=10"))

	v, err = query.NewParams().
		WithPageSize(20).
		WithID("5e5f6a").
		WithOrder(query.Asc).
		WithTypes(model.Transfer, model.AggregateBonded).
		Values()
	Expect(err).ToNot(HaveOccurred())
	Expect(v.Get("pageSize")).To(Equal("20"))
	Expect(v.Get("id")).To(Equal("5e5f6a"))
	Expect(v.Get("ordering")).To(Equal("id"))
	Expect(v["type"]).To(Equal([]string{"16724,16961"}))

	v, err = query.Params{PageSize: 500}.Values()
	Expect(err).ToNot(HaveOccurred())
	Expect(v.Get("pageSize")).To(Equal("10"))
	Expect(v.Has("type")).To(BeFalse())
}

func TestParseOrder(t *testing.T) {
	RegisterTestingT(t)

	for in, expected := range map[string]query.Order{
		"asc": query.Asc, "ASC": query.Asc, "id": query.Asc,
		"desc": query.Desc, "-id": query.Desc, "": query.Desc,
	} {
		o, err := query.ParseOrder(in)
		Expect(err).ToNot(HaveOccurred())
		Expect(o).To(Equal(expected))
	}

	_, err := query.ParseOrder("sideways")
	Expect(errors.HasCause(err, query.ErrInvalidOrder)).To(BeTrue())
}
