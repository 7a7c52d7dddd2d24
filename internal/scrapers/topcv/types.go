package topcv

// JobStub is one result of a search page. absent fields are nil.
type JobStub struct {
	Title      string
	JobUrl     string
	Company    *string
	CompanyUrl *string
	Salary     *string
	Location   *string
	Experience *string
}

type JobDetail struct {
	Title            *string
	Salary           *string
	Location         *string
	Experience       *string
	Deadline         *string
	Tags             *string
	Description      *string
	Requirements     *string
	Benefits         *string
	WorkingAddresses *string
	WorkingTimes     *string
	CompanyUrl       *string
}

type CompanyProfile struct {
	Name        *string
	Website     *string
	Size        *string
	Industry    *string
	Address     *string
	Description *string
}
