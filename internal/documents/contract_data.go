package documents

import (
	"fmt"
	"strconv"
	"time"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
)

// seriesCode is the fixed plant code embedded in every contract number.
const seriesCode = "36"

var monthNames = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// ContractData is the placeholder→value map consumed by the external document
// generator. The core only supplies the values, never the templating.
type ContractData map[string]string

// ContractNumber builds the contract number as day/month/yy/series/innTail.
func ContractNumber(now time.Time, inn string) string {
	return fmt.Sprintf("%d/%d/%s/%s/%s", now.Day(), int(now.Month()), yearSuffix(now), seriesCode, innTail(inn))
}

// BuildContractData assembles the contract placeholders for the given parties.
// The counterparty type tag is switched exhaustively; unknown tags are
// rejected rather than probed.
func BuildContractData(entity *models.LegalEntity, cp *models.Counterparty, inv *models.Invoice, timeframeDays int, now time.Time) (ContractData, error) {
	if entity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "internal legal entity required")
	}
	if cp == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "counterparty required")
	}
	if timeframeDays <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "timeframe must be positive")
	}

	data := ContractData{
		"юл":       entity.Name,
		"юл_инн":   entity.INN,
		"юл_кпп":   entity.KPP,
		"юл_огрн":  entity.OGRN,
		"юл_адрес": entity.Address,
		"юл_банк":  entity.BankName,
		"юл_бик":   entity.BIK,
		"юл_рс":    entity.Account,
		"юл_корс":  entity.CorrAccount,
		"юл_фио":   entity.Director,

		"номер_договора": ContractNumber(now, cp.INN),
		"число":          strconv.Itoa(now.Day()),
		"месяц":          strconv.Itoa(int(now.Month())),
		"месяц_назв":     monthNames[now.Month()-1],
		"год":            yearSuffix(now),
		"дни":            strconv.Itoa(timeframeDays),
		"раб_дни":        WorkdayPhrase(timeframeDays),
	}

	switch cp.Type {
	case enums.CounterpartyLegalEntity, enums.CounterpartyEntrepreneur:
		data["орг"] = cp.Name
		data["орг_инн"] = cp.INN
		data["инн_4"] = innTail(cp.INN)
		data["орг_кпп"] = cp.KPP
		data["орг_огрн"] = cp.OGRN
		data["орг_адрес"] = cp.LegalAddress
		data["орг_банк"] = cp.BankName
		data["орг_бик"] = cp.BIK
		data["орг_рс"] = cp.Account
		data["орг_корс"] = cp.CorrAccount
		data["орг_фио"] = cp.Director
	case enums.CounterpartyPerson:
		data["орг"] = cp.Name
		data["орг_инн"] = cp.INN
		data["инн_4"] = innTail(cp.INN)
		data["паспорт_серия"] = cp.PassportSeries
		data["паспорт_номер"] = cp.PassportNumber
		data["паспорт_выдан"] = cp.PassportIssuedBy
		if cp.PassportIssuedAt != nil {
			data["паспорт_дата"] = cp.PassportIssuedAt.Format("02.01.2006")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown counterparty type %q", cp.Type))
	}

	if inv != nil {
		data["счет_номер"] = inv.Number
		data["счет_дата"] = inv.Date.Format("02.01.2006")
		data["сумма"] = inv.Amount.StringFixed(2)
	}
	return data, nil
}

// WorkdayPhrase renders a day count with the correct Russian plural form.
func WorkdayPhrase(n int) string {
	tail10, tail100 := n%10, n%100
	switch {
	case tail10 == 1 && tail100 != 11:
		return fmt.Sprintf("%d рабочий день", n)
	case tail10 >= 2 && tail10 <= 4 && !(tail100 >= 12 && tail100 <= 14):
		return fmt.Sprintf("%d рабочих дня", n)
	default:
		return fmt.Sprintf("%d рабочих дней", n)
	}
}

func yearSuffix(now time.Time) string {
	return fmt.Sprintf("%02d", now.Year()%100)
}

// innTail is the last four digits of the INN, or the whole value when shorter.
func innTail(inn string) string {
	if len(inn) <= 4 {
		return inn
	}
	return inn[len(inn)-4:]
}
