package dto

import (
	"tvdigital_backend/internals/features/siaran/model"
	"tvdigital_backend/internals/features/siaran/service"
)

// CreateSiaranRequest bisa dikirim sebagai JSON maupun form.
type CreateSiaranRequest struct {
	Provinsi string `json:"provinsi" form:"provinsi"`
	Wilayah  string `json:"wilayah" form:"wilayah"`
	Mux      string `json:"mux" form:"mux"`
	Siaran   string `json:"siaran" form:"siaran"` // dipisah koma
}

func (r CreateSiaranRequest) ToInput() service.RecordInput {
	return service.RecordInput{
		Provinsi: r.Provinsi,
		Wilayah:  r.Wilayah,
		Mux:      r.Mux,
		Siaran:   r.Siaran,
	}
}

// UpdateSiaranRequest: path diambil dari URL, body hanya daftar siaran.
type UpdateSiaranRequest struct {
	Siaran string `json:"siaran" form:"siaran"`
}

type SiaranResponse struct {
	Provinsi string `json:"provinsi"`
	Wilayah  string `json:"wilayah"`
	Mux      string `json:"mux"`
	*model.BroadcastRecord
}

func NewSiaranResponse(provinsi, wilayah, mux string, rec *model.BroadcastRecord) SiaranResponse {
	return SiaranResponse{
		Provinsi:        provinsi,
		Wilayah:         wilayah,
		Mux:             mux,
		BroadcastRecord: rec,
	}
}
