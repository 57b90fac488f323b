package object

// StringTable is an ELF string table. Each distinct string is stored once.
type StringTable struct {
	Data  []byte
	cache map[string]int
}

// Intern returns the offset of a string, adding it on first use. The table
// starts with the empty string at offset 0.
func (st *StringTable) Intern(name string) (offset int) {
	if st.cache == nil {
		st.cache = make(map[string]int)
	}

	offset, ok := st.cache[name]
	if ok {
		return
	}

	if len(st.Data) == 0 {
		st.Data = append(st.Data, 0)
		st.cache[""] = 0
		if len(name) == 0 {
			return 0
		}
	}

	offset = len(st.Data)
	st.Data = append(st.Data, name...)
	st.Data = append(st.Data, 0)
	st.cache[name] = offset

	return
}
