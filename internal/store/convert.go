package store

import (
	"database/sql"

	"topcv-crawler/internal/crawler"
	"topcv-crawler/internal/store/db"
)

func toNull(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNull(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func recordParams(runId string, position int64, r crawler.JobRecord) db.CreateJobRecordParams {
	return db.CreateJobRecordParams{
		RunID:              runId,
		Position:           position,
		JobPath:            r.JobPath(),
		CrawlDate:          r.CrawlDate,
		SearchKeyword:      r.SearchKeyword,
		SearchSlug:         r.SearchSlug,
		Title:              r.Title,
		DetailTitle:        toNull(r.DetailTitle),
		JobUrl:             r.JobUrl,
		Company:            toNull(r.Company),
		CompanyNameFull:    toNull(r.CompanyNameFull),
		CompanyUrl:         toNull(r.CompanyUrl),
		CompanyUrlFromJob:  toNull(r.CompanyUrlFromJob),
		SalaryList:         toNull(r.SalaryList),
		DetailSalary:       toNull(r.DetailSalary),
		AddressList:        toNull(r.AddressList),
		DetailLocation:     toNull(r.DetailLocation),
		ExpList:            toNull(r.ExpList),
		DetailExperience:   toNull(r.DetailExperience),
		Deadline:           toNull(r.Deadline),
		Tags:               toNull(r.Tags),
		WorkingAddresses:   toNull(r.WorkingAddresses),
		WorkingTimes:       toNull(r.WorkingTimes),
		DescMota:           toNull(r.DescMota),
		DescYeucau:         toNull(r.DescYeucau),
		DescQuyenloi:       toNull(r.DescQuyenloi),
		CompanyWebsite:     toNull(r.CompanyWebsite),
		CompanySize:        toNull(r.CompanySize),
		CompanyIndustry:    toNull(r.CompanyIndustry),
		CompanyAddress:     toNull(r.CompanyAddress),
		CompanyDescription: toNull(r.CompanyDescription),
	}
}

func fromRow(row db.JobRecord) crawler.JobRecord {
	return crawler.JobRecord{
		CrawlDate:          row.CrawlDate,
		SearchKeyword:      row.SearchKeyword,
		SearchSlug:         row.SearchSlug,
		Title:              row.Title,
		DetailTitle:        fromNull(row.DetailTitle),
		JobUrl:             row.JobUrl,
		Company:            fromNull(row.Company),
		CompanyNameFull:    fromNull(row.CompanyNameFull),
		CompanyUrl:         fromNull(row.CompanyUrl),
		CompanyUrlFromJob:  fromNull(row.CompanyUrlFromJob),
		SalaryList:         fromNull(row.SalaryList),
		DetailSalary:       fromNull(row.DetailSalary),
		AddressList:        fromNull(row.AddressList),
		DetailLocation:     fromNull(row.DetailLocation),
		ExpList:            fromNull(row.ExpList),
		DetailExperience:   fromNull(row.DetailExperience),
		Deadline:           fromNull(row.Deadline),
		Tags:               fromNull(row.Tags),
		WorkingAddresses:   fromNull(row.WorkingAddresses),
		WorkingTimes:       fromNull(row.WorkingTimes),
		DescMota:           fromNull(row.DescMota),
		DescYeucau:         fromNull(row.DescYeucau),
		DescQuyenloi:       fromNull(row.DescQuyenloi),
		CompanyWebsite:     fromNull(row.CompanyWebsite),
		CompanySize:        fromNull(row.CompanySize),
		CompanyIndustry:    fromNull(row.CompanyIndustry),
		CompanyAddress:     fromNull(row.CompanyAddress),
		CompanyDescription: fromNull(row.CompanyDescription),
	}
}
