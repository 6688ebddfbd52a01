package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/apperr"
)

type AddressServiceSuite struct{ marketSuite }

func TestAddressServiceSuite(t *testing.T) {
	suite.Run(t, new(AddressServiceSuite))
}

func (s *AddressServiceSuite) defaults(userID uint) []uint {
	var ids []uint
	s.Require().NoError(s.db.Model(&entity.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Pluck("id", &ids).Error)
	return ids
}

func (s *AddressServiceSuite) TestFirstAddressBecomesDefault() {
	first, err := s.addresses.Create(s.other.ID, &CreateAddressReq{Street: "Av. B", City: "Uberlandia"})
	s.Require().NoError(err)
	s.True(first.IsDefault)

	second, err := s.addresses.Create(s.other.ID, &CreateAddressReq{Street: "Av. C", City: "Uberlandia"})
	s.Require().NoError(err)
	s.False(second.IsDefault)
	s.Equal([]uint{first.ID}, s.defaults(s.other.ID))
}

func (s *AddressServiceSuite) TestSingleDefault() {
	created, err := s.addresses.Create(s.client.ID, &CreateAddressReq{Street: "Rua Nova", City: "Uberaba", IsDefault: true})
	s.Require().NoError(err)
	s.Equal([]uint{created.ID}, s.defaults(s.client.ID))

	got, err := s.addresses.SetDefault(s.client.ID, s.addr.ID)
	s.Require().NoError(err)
	s.True(got.IsDefault)
	s.Equal([]uint{s.addr.ID}, s.defaults(s.client.ID))

	// idempotent
	_, err = s.addresses.SetDefault(s.client.ID, s.addr.ID)
	s.Require().NoError(err)
	s.Equal([]uint{s.addr.ID}, s.defaults(s.client.ID))

	_, err = s.addresses.SetDefault(s.other.ID, s.addr.ID)
	s.True(apperr.Is(err, apperr.KindForbidden), "got %v", err)
	s.Equal([]uint{s.addr.ID}, s.defaults(s.client.ID))

	list, err := s.addresses.List(s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(s.addr.ID, list[0].ID)
}

func (s *AddressServiceSuite) TestUpdateAndAccess() {
	city := "  Araxa "
	got, err := s.addresses.Update(s.client.ID, s.addr.ID, &UpdateAddressReq{City: &city})
	s.Require().NoError(err)
	s.Equal("Araxa", got.City)
	s.Equal("Rua A", got.Street)

	_, err = s.addresses.Update(s.other.ID, s.addr.ID, &UpdateAddressReq{City: &city})
	s.True(apperr.Is(err, apperr.KindForbidden), "got %v", err)

	_, err = s.addresses.Get(s.client.ID, 9999)
	s.True(apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func (s *AddressServiceSuite) TestDeleteBlockedByOpenOrder() {
	o := s.placeOrder()

	err := s.addresses.Delete(s.client.ID, s.addr.ID)
	s.True(apperr.Is(err, apperr.KindBadRequest), "got %v", err)

	err = s.addresses.Delete(s.other.ID, s.addr.ID)
	s.True(apperr.Is(err, apperr.KindForbidden), "got %v", err)

	s.forceStatus(o.ID, entity.StatusDelivered)
	s.Require().NoError(s.addresses.Delete(s.client.ID, s.addr.ID))

	// the delivered order still shows the address it was sent to
	got, err := s.orders.Detail(s.actor(s.client), o.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Address)
	s.Equal("Rua A", got.Address.Street)
}
