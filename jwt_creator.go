package main

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strconv"
	"time"

	"aamva-parser/document/aamva"

	"github.com/golang-jwt/jwt/v4"
)

const LICENCE_SUBJECT = "aamva-dl"

type JwtCreator interface {
	CreateLicenceJwt(record aamva.Record) (jwt string, err error)
}

func NewLicenceJwtCreator(privateKeyPath string, issuerId string) (*DefaultJwtCreator, error) {
	keyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwt private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt private key: %w", err)
	}

	return &DefaultJwtCreator{
		issuerId:   issuerId,
		privateKey: privateKey,
		now:        time.Now,
	}, nil
}

type DefaultJwtCreator struct {
	privateKey *rsa.PrivateKey
	issuerId   string
	now        func() time.Time
}

type LicenceClaims struct {
	Licence map[string]string `json:"licence"`
	jwt.RegisteredClaims
}

func licenceAttributes(record aamva.Record) map[string]string {
	return map[string]string{
		"vehicleClass":         record.VehicleClass,
		"drivingPrivileges":    record.DrivingPrivileges,
		"additionalPrivileges": record.AdditionalPrivileges,
		"expirationDate":       record.ExpirationDate,
		"lastName":             record.LastName,
		"firstName":            record.FirstName,
		"middleName":           record.MiddleName,
		"issueDate":            record.IssueDate,
		"dateOfBirth":          record.DateOfBirth,
		"gender":               strconv.Itoa(record.Gender.Code()),
		"eyeColor":             record.EyeColor,
		"height":               record.Height,
		"street":               record.Street,
		"city":                 record.City,
		"state":                record.State,
		"postalCode":           record.PostalCode,
	}
}

// CreateLicenceJwt signs the record attributes with RS256, valid for a year
func (jc *DefaultJwtCreator) CreateLicenceJwt(record aamva.Record) (string, error) {
	issuedAt := jc.now()
	claims := LicenceClaims{
		Licence: licenceAttributes(record),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jc.issuerId,
			Subject:   LICENCE_SUBJECT,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.AddDate(1, 0, 0)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(jc.privateKey)
}
