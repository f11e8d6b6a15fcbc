package scraper

// Selectors for the surfaces this scraper drives. Centralising them makes
// site-structure churn a one-file fix. Selectors beginning with "/" are
// XPath, the rest are CSS.
const (
	// Login surface
	selMobileInput   = `#mobilemy`
	selSendOTP       = `//input[@id='signInSubmitButton' and @value='Send OTP']`
	selOTPInput      = `//input[@type='text' and @placeholder='----' and @maxlength='4']`
	selVerifyOTP     = `//input[@id='signInSubmitButton' and @value='Verify OTP']`
	selLoggedInMarks = `//*[contains(text(), 'My Account') or contains(text(), 'Dashboard') or contains(text(), 'My Orders') or contains(text(), 'Post Your Requirement')]`

	// Search surface
	selSearchInput   = `#search_string`
	selSearchButton  = `.rvmp_srch_button`
	selOpenResults   = `.adv-btn.search-button`
	selResultsList   = `.listingCardContainer`
	selListingCard   = `.card`
	selCityDropdown  = `#hd_searchPlace`
	selAllIndia      = `//div[contains(@class, 'imas-item') and contains(@class, 'imas-city-text') and @data-value='All India']`
	selShowMore      = `.showmoreresultsdiv button`
	selNextPage      = `//a[contains(text(), 'Next') or @class='next' or @class='pagination__next'] | //span[text()='Next'] | //*[contains(@class, 'pg-next')]`

	// Result card fields
	cardTitle    = `.producttitle .cardlinks`
	cardPrice    = `p.price`
	cardCompany  = `.companyname .cardlinks`
	cardLocation = `.newLocationUi .highlight`
	cardAddress  = `#citytt1 p`
	cardPhone    = `.contactnumber .pns_h`

	// Profile surface fields
	profileBody         = `body`
	profileTitle        = `#firstheading h1`
	profilePrice        = `#askprice_pg-1`
	profileCompany      = `.company_details h2`
	profileCityMark     = `span.city-highlight`
	profileAddressAlt   = `#directions span.color1.dcell.verT.fs13`
	profileRevealPhone  = `#mn_mask_pg-1`
	profileRevealedText = `.vn_cl.View_Mobile_Number.w90 span.bo.duet.ml5`
	profileEmailBlock   = `#email_pg-1`
)
