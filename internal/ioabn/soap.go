package ioabn

import (
	"encoding/xml"
)

// Namespace is the XML namespace of the ABN Lookup web service.
const Namespace = "http://abr.business.gov.au/ABRXMLSearch/"

// SOAP operations used by the client.
const (
	OpSearchByCharity = "SearchByCharity"
	OpSearchByABN     = "SearchByABNv201408"
)

type envelope struct {
	XMLName xml.Name `xml:"soap:Envelope"`
	XSI     string   `xml:"xmlns:xsi,attr"`
	XSD     string   `xml:"xmlns:xsd,attr"`
	Soap    string   `xml:"xmlns:soap,attr"`
	Body    body     `xml:"soap:Body"`
}

type body struct {
	Request any
}

type searchByCharity struct {
	XMLName            xml.Name `xml:"http://abr.business.gov.au/ABRXMLSearch/ SearchByCharity"`
	Postcode           string   `xml:"postcode"`
	State              string   `xml:"state"`
	CharityTypeCode    string   `xml:"charityTypeCode"`
	ConcessionTypeCode string   `xml:"concessionTypeCode"`
	GUID               string   `xml:"authenticationGuid"`
}

type searchByABN struct {
	XMLName                  xml.Name `xml:"http://abr.business.gov.au/ABRXMLSearch/ SearchByABNv201408"`
	SearchString             string   `xml:"searchString"`
	IncludeHistoricalDetails string   `xml:"includeHistoricalDetails"`
	GUID                     string   `xml:"authenticationGuid"`
}

func newEnvelope(req any) ([]byte, error) {
	env := envelope{
		XSI:  "http://www.w3.org/2001/XMLSchema-instance",
		XSD:  "http://www.w3.org/2001/XMLSchema",
		Soap: "http://schemas.xmlsoap.org/soap/envelope/",
		Body: body{Request: req},
	}
	bs, err := xml.Marshal(env)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), bs...), nil
}

// soapAction returns the value of SOAPAction header for an operation.
func soapAction(op string) string {
	return `"` + Namespace + op + `"`
}
